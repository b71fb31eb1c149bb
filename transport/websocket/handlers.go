package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

var (
	ErrMissingGameID = errors.New("game_id is required")
	ErrMissingCell   = errors.New("cell is required")
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	view, err := that.uGame.CreateGame(ctx)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: &view})
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	return that.handleGameAction(ctx, msg, conn, that.uGame.GetGame)
}

func (that *Server) handleStartGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	return that.handleGameAction(ctx, msg, conn, that.uGame.StartGame)
}

func (that *Server) handleReplay(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	return that.handleGameAction(ctx, msg, conn, that.uGame.Replay)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	payload, err := parsePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payload.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, ErrMissingCell.Error())
	}

	view, err := that.uGame.MakeTurn(ctx, payload.GameID, *payload.Cell)
	if err != nil {
		log.Info("turn rejected", "gameID", payload.GameID, "cell", *payload.Cell, "error", err)

		response := Payload{Error: err.Error()}
		if view.GameID != "" {
			response.Game = &view
		}

		return that.sendMessage(conn, msg.Action, response)
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: &view})
}

// handleGameAction - runs an action that only needs the game id.
func (that *Server) handleGameAction(
	ctx context.Context,
	msg *Message,
	conn *websocket.Conn,
	action func(ctx context.Context, id string) (tictactoe.View, error),
) error {
	log := that.logger.With("method", "handleGameAction", "action", msg.Action)

	payload, err := parsePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	view, err := action(ctx, payload.GameID)
	if err != nil {
		log.Info("action failed", "gameID", payload.GameID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: &view})
}

func parsePayload(msg *Message) (Payload, error) {
	var payload Payload

	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return Payload{}, errors.New("malformed payload")
		}
	}

	if payload.GameID == "" {
		return Payload{}, ErrMissingGameID
	}

	return payload, nil
}
