package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameNotFound     = errors.New("game not found")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrInvalidPattern   = errors.New("invalid win pattern")
)
