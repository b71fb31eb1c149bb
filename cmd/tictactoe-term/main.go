package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/nsf/termbox-go"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := termbox.Init(); err != nil {
		logger.Error("failed to init terminal", "error", err)
		os.Exit(1)
	}

	board := newBoardUI(tictactoe.NewGameController(entity.NewGame(uuid.NewString())))
	board.controller.Start()

	err := board.run()

	termbox.Close()

	if err != nil {
		logger.Error("terminal host stopped", "error", err)
		os.Exit(1)
	}
}
