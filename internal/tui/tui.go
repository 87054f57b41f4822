// Package tui runs the game on a tcell screen. It is the default frontend
// for local play; the ANSI frontend in package loop serves SSH sessions.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloonpop/internal/draw"
	"github.com/tomz197/balloonpop/internal/input"
	"github.com/tomz197/balloonpop/internal/loop"
	"github.com/tomz197/balloonpop/internal/ui"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	panelStyle  = tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(0xff, 0xff, 0xff)).
			Background(tcell.NewRGBColor(0x22, 0x22, 0x33))
)

// App draws a loop.Game on a tcell screen.
type App struct {
	screen tcell.Screen
	game   *loop.Game
	canvas *draw.Canvas
	plain  *ui.Theme
	fps    int

	mouseDown bool
}

// NewApp prepares screen for play. The caller owns Init and Fini.
func NewApp(screen tcell.Screen, opts loop.Options) *App {
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()
	return &App{
		screen: screen,
		game:   loop.NewGame(opts),
		canvas: draw.NewCanvas(0, 0),
		plain:  ui.Plain(),
		fps:    opts.FPS,
	}
}

// Game returns the driven game.
func (a *App) Game() *loop.Game {
	return a.game
}

// Run plays until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	fps := a.fps
	if fps <= 0 {
		fps = 60
	}
	frame := time.Second / time.Duration(fps)
	lastTime := time.Now()

	for a.game.Running() {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a.Step(delta)

		elapsed := time.Since(frameStart)
		if elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
	return nil
}

// Step runs a single Input → Update → Draw cycle.
func (a *App) Step(delta time.Duration) {
	a.game.Apply(a.readInput(), a.toLogical)
	a.updateScreen()
	a.game.Update(delta)
	a.drawFrame()
}

// readInput drains pending events without blocking and merges them into
// one frame of input.
func (a *App) readInput() input.Input {
	var in input.Input
	for a.screen.HasPendingEvent() {
		switch ev := a.screen.PollEvent().(type) {
		case nil:
			in.Closed = true
			in.Quit = true
			return in
		case *tcell.EventKey:
			input.Merge(&in, keyInput(ev))
		case *tcell.EventMouse:
			pressed := ev.Buttons()&tcell.Button1 != 0
			if pressed && !a.mouseDown {
				x, y := ev.Position()
				in.Clicks = append(in.Clicks, input.Click{Col: x, Row: y})
			}
			a.mouseDown = pressed
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}
	return in
}

// keyInput maps a key event onto the same actions the byte parser knows.
func keyInput(ev *tcell.EventKey) input.Input {
	var b []byte
	switch ev.Key() {
	case tcell.KeyRune:
		b = []byte(string(ev.Rune()))
	case tcell.KeyEscape:
		b = []byte{'\x1b'}
	case tcell.KeyEnter:
		b = []byte{'\r'}
	case tcell.KeyCtrlC:
		b = []byte{'\x03'}
	default:
		// Other keys still count as activity.
		return input.Input{Pressed: []byte{0}}
	}
	return input.ParseComplete(b)
}

func (a *App) toLogical(col, row int) (float64, float64, bool) {
	return a.canvas.TerminalToLogical(col, row)
}

func (a *App) updateScreen() {
	termWidth, termHeight := a.screen.Size()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, loop.MaxTermWidth, loop.MaxTermHeight)

	c := a.canvas
	if renderWidth != c.TerminalWidth() || renderHeight != c.TerminalHeight() ||
		offsetCol != c.OffsetCol() || offsetRow != c.OffsetRow() {
		a.screen.Clear()
		c.Resize(renderWidth, renderHeight)
		c.SetOffset(offsetCol, offsetRow)
		a.game.Session().Resize(c.Size())
	}
}

func (a *App) drawFrame() {
	c := a.canvas
	a.game.Paint(c, a.plain)

	offCol, offRow := c.OffsetCol(), c.OffsetRow()
	c.Cells(func(col, row int, ch rune, fg, bg colorful.Color) {
		style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
		a.screen.SetContent(col+offCol, row+offRow, ch, nil, style)
	})
	a.drawBorder()

	if block, _ := a.game.Overlay(a.plain); block != "" {
		width, height := c.TerminalWidth(), c.TerminalHeight()
		col, row := ui.Centre(block, width, height)
		for i, line := range ui.Lines(block) {
			if row+i >= height {
				break
			}
			x := col
			for _, r := range line {
				if x >= width {
					break
				}
				a.screen.SetContent(x+offCol, row+i+offRow, r, nil, panelStyle)
				x++
			}
		}
	}

	a.screen.Show()
}

// drawBorder frames the play field when the terminal is larger than the
// maximum render size.
func (a *App) drawBorder() {
	c := a.canvas
	left, top := c.OffsetCol()-1, c.OffsetRow()-1
	right, bottom := c.OffsetCol()+c.TerminalWidth(), c.OffsetRow()+c.TerminalHeight()

	if top >= 0 {
		for x := left + 1; x < right; x++ {
			a.screen.SetContent(x, top, '─', nil, borderStyle)
			a.screen.SetContent(x, bottom, '─', nil, borderStyle)
		}
	}
	if left >= 0 {
		for y := top + 1; y < bottom; y++ {
			a.screen.SetContent(left, y, '│', nil, borderStyle)
			a.screen.SetContent(right, y, '│', nil, borderStyle)
		}
	}
	if top >= 0 && left >= 0 {
		a.screen.SetContent(left, top, '┌', nil, borderStyle)
		a.screen.SetContent(right, top, '┐', nil, borderStyle)
		a.screen.SetContent(left, bottom, '└', nil, borderStyle)
		a.screen.SetContent(right, bottom, '┘', nil, borderStyle)
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
