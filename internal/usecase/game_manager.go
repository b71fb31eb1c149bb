package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs one controller pass per request against a stored session.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	newID    func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		newID:    uuid.NewString,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (tictactoe.View, error) {
	game := entity.NewGame(that.newID())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return tictactoe.View{}, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return tictactoe.NewGameController(game).View(), nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (tictactoe.View, error) {
	controller, err := that.loadController(ctx, id)
	if err != nil {
		return tictactoe.View{}, err
	}

	return controller.View(), nil
}

func (that *GameManager) StartGame(ctx context.Context, id string) (tictactoe.View, error) {
	controller, err := that.loadController(ctx, id)
	if err != nil {
		return tictactoe.View{}, err
	}

	view := controller.Start()

	if err = that.updateGame(ctx, controller.Game()); err != nil {
		return tictactoe.View{}, err
	}

	return view, nil
}

// MakeTurn - applies a click on cell. A rejected move returns the unchanged view with the error.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (tictactoe.View, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id, "cell", cell)

	controller, err := that.loadController(ctx, id)
	if err != nil {
		return tictactoe.View{}, err
	}

	view, err := controller.HandleCellClick(cell)
	if err != nil {
		log.Debug("turn rejected", "error", err)
		return view, err
	}

	if err = that.updateGame(ctx, controller.Game()); err != nil {
		return tictactoe.View{}, err
	}

	if view.ShowReplay {
		log.Info("game finished", "status", view.Status, "winner", view.Winner)
	}

	return view, nil
}

func (that *GameManager) Replay(ctx context.Context, id string) (tictactoe.View, error) {
	controller, err := that.loadController(ctx, id)
	if err != nil {
		return tictactoe.View{}, err
	}

	view := controller.Replay()

	if err = that.updateGame(ctx, controller.Game()); err != nil {
		return tictactoe.View{}, err
	}

	return view, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// EvaluateBoard - stateless evaluation of a board sent by a client.
func (that *GameManager) EvaluateBoard(cells []string) (entity.Outcome, error) {
	board, err := entity.ParseBoard(cells)
	if err != nil {
		return entity.Outcome{}, err
	}

	return entity.Evaluate(board), nil
}

// EvaluateBoardWithPatterns - like EvaluateBoard, but over the client's own win patterns.
func (that *GameManager) EvaluateBoardWithPatterns(cells []string, patterns [][]int) (entity.Outcome, error) {
	board, err := entity.ParseBoard(cells)
	if err != nil {
		return entity.Outcome{}, err
	}

	outcome, err := entity.EvaluatePatterns(board, patterns)
	if err != nil {
		return entity.Outcome{}, fmt.Errorf("failed to evaluate board: %w", err)
	}

	return outcome, nil
}

func (that *GameManager) loadController(ctx context.Context, id string) (*tictactoe.GameController, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return tictactoe.NewGameController(game), nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
