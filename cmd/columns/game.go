package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/columns/internal/apperror"
	"github.com/rocketscienceinc/columns/internal/columns"
	"github.com/rocketscienceinc/columns/internal/entity"
	"github.com/rocketscienceinc/columns/internal/render"
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionLeft
	actionRight
	actionRotate
	actionDrop
	actionRestart
)

func actionFor(key tcell.Key, ch rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyDown:
		return actionDrop
	case tcell.KeyUp:
		return actionRotate
	case tcell.KeyRune:
		switch ch {
		case 'q':
			return actionQuit
		case ' ':
			return actionRotate
		case 'r':
			return actionRestart
		}
	}

	return actionNone
}

type game struct {
	logger *slog.Logger
	sound  soundPlayer

	rows, cols int
	newSource  func() columns.Source

	board   *columns.Board
	cleared int
	stuck   bool
}

func newGame(logger *slog.Logger, sound soundPlayer, rows, cols int, newSource func() columns.Source) *game {
	that := &game{
		logger:    logger.With("component", "game"),
		sound:     sound,
		rows:      rows,
		cols:      cols,
		newSource: newSource,
	}
	that.restart()

	return that
}

func (that *game) restart() {
	that.board = columns.NewBoard(that.rows, that.cols, that.newSource())
	that.cleared = 0
	that.stuck = false
}

// apply runs a player action and reports whether the game should keep running.
func (that *game) apply(a action) bool {
	var err error

	switch a {
	case actionQuit:
		return false
	case actionLeft:
		err = that.board.MoveLeft()
	case actionRight:
		err = that.board.MoveRight()
	case actionRotate:
		err = that.board.Rotate()
	case actionDrop:
		that.step()
		return true
	case actionRestart:
		if that.board.IsGameOver() || that.stuck {
			that.restart()
		}
		return true
	}

	if err != nil && !errors.Is(err, apperror.ErrInvalidMove) && !errors.Is(err, apperror.ErrGameOver) {
		that.logger.Error("action failed", "action", a, "error", err)
	}

	return true
}

// step is one tick of the game clock: a new faller when the board waits for one, a board tick otherwise.
func (that *game) step() {
	if that.board.IsGameOver() || that.stuck {
		return
	}

	var err error
	if that.board.NeedsNewFaller() {
		err = that.board.CreateFaller()
	} else {
		err = that.board.AdvanceTick()
	}

	switch {
	case errors.Is(err, apperror.ErrInvalidColumn):
		// every column is full but nothing matched
		that.stuck = true
		that.sound.PlayGameOver()
		return
	case err != nil:
		that.logger.Error("tick failed", "error", err)
		return
	}

	if cleared := that.board.Cleared(); cleared > that.cleared {
		that.sound.PlayClear(cleared - that.cleared)
		that.cleared = cleared
	}

	if that.board.IsGameOver() {
		that.logger.Info("game over", "cleared", that.cleared)
		that.sound.PlayGameOver()
	}
}

func (that *game) status() string {
	switch {
	case that.board.IsGameOver() || that.stuck:
		return fmt.Sprintf("GAME OVER  cleared %d  r: restart  q: quit", that.cleared)
	default:
		return fmt.Sprintf("cleared %d  %s", that.cleared, that.board.State())
	}
}

var colorStyles = map[entity.Color]tcell.Color{
	entity.Red:    tcell.ColorRed,
	entity.Orange: tcell.ColorOrange,
	entity.Yellow: tcell.ColorYellow,
	entity.Green:  tcell.ColorGreen,
	entity.Blue:   tcell.ColorBlue,
	entity.Indigo: tcell.ColorIndigo,
	entity.Purple: tcell.ColorPurple,
}

func cellStyle(cell entity.Cell) tcell.Style {
	style := tcell.StyleDefault.Foreground(colorStyles[cell.Color])

	switch cell.State {
	case entity.StateLanded:
		return style.Bold(true)
	case entity.StateMatched:
		return style.Reverse(true)
	default:
		return style
	}
}

func (that *game) draw(screen tcell.Screen) {
	screen.Clear()

	grid := that.board.Snapshot()
	lines := render.Lines(grid)
	border := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for row := range grid.Rows() {
		drawText(screen, 0, row, "|", border)
		for col := range grid.Cols() {
			cell := grid.At(col, row)
			drawText(screen, 1+col*3, row, render.Glyph(cell), cellStyle(cell))
		}
		drawText(screen, 1+grid.Cols()*3, row, "|", border)
	}

	drawText(screen, 0, grid.Rows(), lines[len(lines)-1], border)
	drawText(screen, 0, grid.Rows()+2, that.status(), tcell.StyleDefault)
	drawText(screen, 0, grid.Rows()+3, "arrows: move  space/up: rotate  down: drop  q: quit", border)

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
