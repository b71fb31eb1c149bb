package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is the board, turn and status triple of one session.
type Game struct {
	ID          string       `json:"id"`
	Board       Board        `json:"board"`
	Turn        Mark         `json:"turn"`
	Status      string       `json:"status"`
	Winner      Mark         `json:"winner,omitempty"`
	WinPatterns []WinPattern `json:"win_patterns,omitempty"`
	Started     bool         `json:"started"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  Board{},
		Turn:   PlayerX,
		Status: StatusPlaying,
	}
}

// Outcome returns the last evaluation recorded on the game.
func (that *Game) Outcome() Outcome {
	return Outcome{Status: that.Status, Winner: that.Winner, Patterns: that.WinPatterns}
}

func (that *Game) IsFinished() bool {
	return that.Outcome().IsFinished()
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) ConfirmPlayable() error {
	switch {
	case !that.Started:
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsPlaying():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) Start() {
	that.Started = true
}

// MakeTurn - places the current mark, toggles the turn and re-evaluates the board.
// A rejected move leaves the game unchanged.
func (that *Game) MakeTurn(cell int) error {
	if err := that.ConfirmPlayable(); err != nil {
		return err
	}

	board, err := ApplyMove(that.Board, cell, that.Turn)
	if err != nil {
		return err
	}

	that.Board = board
	that.Turn = that.Turn.Next()

	that.UpdateGameState()

	return nil
}

// UpdateGameState - records the evaluation of the current board. Turn keeps the
// toggled mark after the game ends.
func (that *Game) UpdateGameState() {
	outcome := Evaluate(that.Board)

	that.Status = outcome.Status
	that.Winner = outcome.Winner
	that.WinPatterns = outcome.Patterns
}

// Reset - clears the board for a replay, keeping the session id and started flag.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Status = StatusPlaying
	that.Winner = EmptyCell
	that.WinPatterns = nil
}
