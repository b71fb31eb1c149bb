package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	StatusTextPlaying = "PLAYING"
	StatusTextXWin    = "X WIN"
	StatusTextOWin    = "O WIN"
	StatusTextEnded   = "ENDED"
)

// View is everything a host needs to render one frame of the board.
type View struct {
	GameID     string       `json:"id"`
	Cells      entity.Board `json:"cells"`
	Turn       entity.Mark  `json:"turn"`
	Status     string       `json:"status"`
	StatusText string       `json:"status_text"`
	Winner     entity.Mark  `json:"winner,omitempty"`
	WinCells   []int        `json:"win_cells"`
	ShowReplay bool         `json:"show_replay"`
	Started    bool         `json:"started"`
}

// GameController owns one game and applies host input to it.
type GameController struct {
	game *entity.Game
}

func NewGameController(game *entity.Game) *GameController {
	return &GameController{game: game}
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

// Start - shows the board, cell clicks are accepted only after it.
func (that *GameController) Start() View {
	that.game.Start()

	return that.View()
}

// HandleCellClick - applies one click on cell. On error the game is unchanged.
func (that *GameController) HandleCellClick(cell int) (View, error) {
	if err := that.game.MakeTurn(cell); err != nil {
		return that.View(), fmt.Errorf("invalid turn: %w", err)
	}

	return that.View(), nil
}

// Replay - resets the board and turn to their initial state.
func (that *GameController) Replay() View {
	that.game.Reset()

	return that.View()
}

func (that *GameController) View() View {
	view := View{
		GameID:     that.game.ID,
		Cells:      that.game.Board,
		Turn:       that.game.Turn,
		Status:     that.game.Status,
		StatusText: statusText(that.game),
		Winner:     that.game.Winner,
		WinCells:   entity.WinCells(that.game.WinPatterns),
		ShowReplay: that.game.IsFinished(),
		Started:    that.game.Started,
	}

	return view
}

func statusText(game *entity.Game) string {
	switch game.Status {
	case entity.StatusWon:
		if game.Winner == entity.PlayerO {
			return StatusTextOWin
		}
		return StatusTextXWin
	case entity.StatusDraw:
		return StatusTextEnded
	default:
		return StatusTextPlaying
	}
}
