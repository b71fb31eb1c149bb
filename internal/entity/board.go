package entity

import (
	"fmt"
	"sort"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
)

// Mark is the value of a single cell and, for X and O, whose turn it is.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

const (
	StatusPlaying = "playing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

const boardSize = 9

// Board holds the nine cells in row-major order.
type Board [boardSize]Mark

// WinPattern is a line of three cell indices.
type WinPattern [3]int

// WinPatterns - rows, columns, then diagonals.
var WinPatterns = []WinPattern{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome is the result of evaluating a board. Winner and Patterns are set only for StatusWon.
type Outcome struct {
	Status   string       `json:"status"`
	Winner   Mark         `json:"winner,omitempty"`
	Patterns []WinPattern `json:"patterns,omitempty"`
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

// Next returns the mark that plays after this one.
func (that Mark) Next() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Evaluate - checks every win pattern and reports all lines completed by the winner.
func Evaluate(board Board) Outcome {
	return evaluate(board, WinPatterns)
}

// EvaluatePatterns - same as Evaluate but over a caller supplied pattern set.
func EvaluatePatterns(board Board, patterns [][]int) (Outcome, error) {
	winPatterns := make([]WinPattern, 0, len(patterns))

	for i, pattern := range patterns {
		if len(pattern) != len(WinPattern{}) {
			return Outcome{}, fmt.Errorf("%w: pattern %d has %d cells", apperror.ErrInvalidPattern, i, len(pattern))
		}

		var winPattern WinPattern
		for j, cell := range pattern {
			if cell < 0 || cell >= boardSize {
				return Outcome{}, fmt.Errorf("%w: pattern %d refers to cell %d", apperror.ErrInvalidPattern, i, cell)
			}
			winPattern[j] = cell
		}

		winPatterns = append(winPatterns, winPattern)
	}

	return evaluate(board, winPatterns), nil
}

func evaluate(board Board, patterns []WinPattern) Outcome {
	var (
		winner  Mark
		matched []WinPattern
	)

	for _, pattern := range patterns {
		a, b, c := board[pattern[0]], board[pattern[1]], board[pattern[2]]
		if a == EmptyCell || a != b || b != c {
			continue
		}

		// a board reached by alternating turns never has lines for both marks
		if winner == EmptyCell {
			winner = a
		}

		if a == winner {
			matched = append(matched, pattern)
		}
	}

	if winner != EmptyCell {
		return Outcome{Status: StatusWon, Winner: winner, Patterns: matched}
	}

	if board.IsFull() {
		return Outcome{Status: StatusDraw}
	}

	return Outcome{Status: StatusPlaying}
}

// ApplyMove - places mark into an empty cell and returns the new board. The input is never modified.
func ApplyMove(board Board, cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= boardSize {
		return board, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return board, fmt.Errorf("%w: unknown mark %q", apperror.ErrInvalidBoard, mark)
	}

	if board[cell] != EmptyCell {
		return board, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	board[cell] = mark

	return board, nil
}

// ParseBoard - converts wire cells into a Board.
func ParseBoard(cells []string) (Board, error) {
	var board Board

	if len(cells) != boardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, boardSize, len(cells))
	}

	for i, cell := range cells {
		mark := Mark(cell)
		if mark != EmptyCell && !mark.IsPlayer() {
			return Board{}, fmt.Errorf("%w: cell %d has value %q", apperror.ErrInvalidBoard, i, cell)
		}
		board[i] = mark
	}

	return board, nil
}

// WinCells returns the sorted set of cells covered by the patterns.
func WinCells(patterns []WinPattern) []int {
	seen := make(map[int]struct{}, boardSize)
	cells := make([]int, 0, boardSize)

	for _, pattern := range patterns {
		for _, cell := range pattern {
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}
			cells = append(cells, cell)
		}
	}

	sort.Ints(cells)

	return cells
}
