package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

const (
	actionGameNew    = "game:new"
	actionGameGet    = "game:get"
	actionGameStart  = "game:start"
	actionGameTurn   = "game:turn"
	actionGameReplay = "game:replay"
)

var ErrUnknownAction = errors.New("unknown action")

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID string          `json:"game_id,omitempty"`
	Cell   *int            `json:"cell,omitempty"`
	Game   *tictactoe.View `json:"game,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action, errorMsg string) error {
	if err := that.sendMessage(conn, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
