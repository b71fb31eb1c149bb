package main

import (
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

const (
	cellWidth  = 4
	cellHeight = 2
	originX    = 2
	originY    = 1
)

type command int

const (
	commandNone command = iota
	commandMove
	commandPlace
	commandReplay
	commandQuit
)

// boardUI renders a local controller and routes key presses to it.
type boardUI struct {
	controller *tictactoe.GameController
	cursor     int
	message    string
}

func newBoardUI(controller *tictactoe.GameController) *boardUI {
	return &boardUI{controller: controller, cursor: 4}
}

func (that *boardUI) run() error {
	for {
		if err := that.draw(); err != nil {
			return err
		}

		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventError:
			return fmt.Errorf("failed to read terminal event: %w", ev.Err)
		case termbox.EventKey:
			if !that.handleKey(ev.Key, ev.Ch) {
				return nil
			}
		}
	}
}

// handleKey applies one key press and reports whether the loop should continue.
func (that *boardUI) handleKey(key termbox.Key, ch rune) bool {
	cmd, cell := parseKey(key, ch, that.cursor)

	switch cmd {
	case commandQuit:
		return false
	case commandMove:
		that.cursor = cell
	case commandPlace:
		that.cursor = cell
		that.place()
	case commandReplay:
		that.controller.Replay()
		that.message = ""
	}

	return true
}

func (that *boardUI) place() {
	if _, err := that.controller.HandleCellClick(that.cursor); err != nil {
		that.message = err.Error()
		return
	}

	that.message = ""
}

// parseKey maps a key press to a command and the cell it targets.
func parseKey(key termbox.Key, ch rune, cursor int) (command, int) {
	row, col := cursor/3, cursor%3

	switch key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return commandQuit, cursor
	case termbox.KeyEnter, termbox.KeySpace:
		return commandPlace, cursor
	case termbox.KeyArrowUp:
		return commandMove, (row+2)%3*3 + col
	case termbox.KeyArrowDown:
		return commandMove, (row+1)%3*3 + col
	case termbox.KeyArrowLeft:
		return commandMove, row*3 + (col+2)%3
	case termbox.KeyArrowRight:
		return commandMove, row*3 + (col+1)%3
	}

	switch {
	case ch == 'q':
		return commandQuit, cursor
	case ch == 'r':
		return commandReplay, cursor
	case ch >= '1' && ch <= '9':
		return commandPlace, int(ch - '1')
	}

	return commandNone, cursor
}

func (that *boardUI) draw() error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("failed to clear terminal: %w", err)
	}

	view := that.controller.View()

	highlighted := make(map[int]bool, len(view.WinCells))
	for _, cell := range view.WinCells {
		highlighted[cell] = true
	}

	for cell, mark := range view.Cells {
		x := originX + (cell%3)*cellWidth
		y := originY + (cell/3)*cellHeight

		fg, bg := termbox.ColorDefault, termbox.ColorDefault
		if highlighted[cell] {
			fg = termbox.ColorGreen | termbox.AttrBold
		}
		if cell == that.cursor && !view.ShowReplay {
			bg = termbox.ColorBlue
		}

		text := "."
		if mark.IsPlayer() {
			text = string(mark)
		}

		drawText(x, y, "["+text+"]", fg, bg)
	}

	statusY := originY + 3*cellHeight
	status := view.StatusText
	if !view.ShowReplay {
		status += fmt.Sprintf("  turn: %s", view.Turn)
	}

	drawText(originX, statusY, status, termbox.ColorYellow, termbox.ColorDefault)
	drawText(originX, statusY+1, that.message, termbox.ColorRed, termbox.ColorDefault)

	help := "arrows/1-9 move, enter place, q quit"
	if view.ShowReplay {
		help = "r replay, q quit"
	}

	drawText(originX, statusY+2, help, termbox.ColorDefault, termbox.ColorDefault)

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("failed to flush terminal: %w", err)
	}

	return nil
}

func drawText(x, y int, text string, fg, bg termbox.Attribute) {
	for i, ch := range text {
		termbox.SetCell(x+i, y, ch, fg, bg)
	}
}
