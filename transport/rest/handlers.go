package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

type gameUseCase interface {
	CreateGame(ctx context.Context) (tictactoe.View, error)
	GetGame(ctx context.Context, id string) (tictactoe.View, error)
	StartGame(ctx context.Context, id string) (tictactoe.View, error)
	MakeTurn(ctx context.Context, id string, cell int) (tictactoe.View, error)
	Replay(ctx context.Context, id string) (tictactoe.View, error)
	DeleteGame(ctx context.Context, id string) error
	EvaluateBoard(cells []string) (entity.Outcome, error)
	EvaluateBoardWithPatterns(cells []string, patterns [][]int) (entity.Outcome, error)
}

type errorResponse struct {
	Error string          `json:"error"`
	Game  *tictactoe.View `json:"game,omitempty"`
}

type evaluateRequest struct {
	Board    []string `json:"board" binding:"required"`
	Patterns [][]int  `json:"patterns,omitempty"`
}

type gameHandler struct {
	logger *slog.Logger
	uGame  gameUseCase
}

func newGameHandler(logger *slog.Logger, uGame gameUseCase) *gameHandler {
	return &gameHandler{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

func (that *gameHandler) createGame(c *gin.Context) {
	view, err := that.uGame.CreateGame(c.Request.Context())
	if err != nil {
		that.sendError(c, "createGame", err, nil)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (that *gameHandler) getGame(c *gin.Context) {
	view, err := that.uGame.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.sendError(c, "getGame", err, nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *gameHandler) startGame(c *gin.Context) {
	view, err := that.uGame.StartGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.sendError(c, "startGame", err, nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

// makeTurn - a non-numeric cell is rejected before the session is looked up.
func (that *gameHandler) makeTurn(c *gin.Context) {
	cell, err := strconv.Atoi(c.Param("cell"))
	if err != nil {
		that.sendError(c, "makeTurn", fmt.Errorf("%w: %q", apperror.ErrInvalidCell, c.Param("cell")), nil)
		return
	}

	view, err := that.uGame.MakeTurn(c.Request.Context(), c.Param("id"), cell)
	if err != nil {
		// a rejected move still carries the current board
		var game *tictactoe.View
		if view.GameID != "" {
			game = &view
		}

		that.sendError(c, "makeTurn", err, game)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *gameHandler) replay(c *gin.Context) {
	view, err := that.uGame.Replay(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.sendError(c, "replay", err, nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (that *gameHandler) deleteGame(c *gin.Context) {
	if err := that.uGame.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		that.sendError(c, "deleteGame", err, nil)
		return
	}

	c.Status(http.StatusNoContent)
}

func (that *gameHandler) evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		that.sendError(c, "evaluate", fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err), nil)
		return
	}

	var (
		outcome entity.Outcome
		err     error
	)

	// no patterns means the standard eight lines
	if req.Patterns == nil {
		outcome, err = that.uGame.EvaluateBoard(req.Board)
	} else {
		outcome, err = that.uGame.EvaluateBoardWithPatterns(req.Board, req.Patterns)
	}

	if err != nil {
		that.sendError(c, "evaluate", err, nil)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (that *gameHandler) sendError(c *gin.Context, method string, err error, game *tictactoe.View) {
	status := statusFromError(err)

	log := that.logger.With("method", method, "error", err)
	if status == http.StatusInternalServerError {
		log.Error("request failed")
		c.JSON(status, errorResponse{Error: "internal server error"})
		return
	}

	log.Debug("request rejected")

	c.JSON(status, errorResponse{Error: err.Error(), Game: game})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidPattern):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
