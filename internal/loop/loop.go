// Package loop provides the main game loop: the per-player Game driver and
// the ANSI frontend that runs it over any reader/writer pair.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/muesli/termenv"
	"github.com/tomz197/balloonpop/internal/draw"
	"github.com/tomz197/balloonpop/internal/input"
	"github.com/tomz197/balloonpop/internal/ui"
)

// TermOptions configures the ANSI frontend.
type TermOptions struct {
	Options
	TermSizeFunc draw.TermSizeFunc
	Profile      termenv.Profile // Colour profile for the panels
}

// Run starts the main game loop with the standard Input → Update → Draw
// cycle, reading keys and SGR mouse reports from r and drawing truecolor
// half blocks to w. It returns when the player quits, the input ends, the
// idle or shutdown timers run out, or ctx is cancelled.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts TermOptions) error {
	g := NewGame(opts.Options)
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	t := &terminal{
		game:     g,
		w:        w,
		sizeFunc: sizeFunc,
		theme:    ui.NewTheme(w, opts.Profile),
		plain:    ui.Plain(),
		canvas:   draw.NewCanvas(0, 0),
		cw:       draw.NewChunkWriter(w, 0, 0),
	}
	stream := input.StartStream(r)
	frame := frameTime(opts.FPS)

	draw.HideCursor(w)
	draw.EnableMouse(w)
	draw.ClearScreen(w)
	defer func() {
		draw.DisableMouse(w)
		draw.ResetStyle(w)
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()

	lastTime := time.Now()

	for g.Running() {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// ===== INPUT PHASE =====
		g.Apply(input.ReadInput(stream), t.canvas.TerminalToLogical)

		// ===== UPDATE PHASE =====
		if err := t.updateScreen(); err != nil {
			return err
		}
		g.Update(delta)

		// ===== DRAW PHASE =====
		if err := t.drawFrame(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
	return nil
}

// terminal renders a Game as ANSI text.
type terminal struct {
	game     *Game
	w        io.Writer
	sizeFunc draw.TermSizeFunc
	theme    *ui.Theme
	plain    *ui.Theme
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter

	prevOverlay OverlayKind
	prevBlock   string
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (t *terminal) updateScreen() error {
	termWidth, termHeight, err := t.sizeFunc()
	if err != nil {
		return err
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, MaxTermWidth, MaxTermHeight)

	c := t.canvas
	if renderWidth != c.TerminalWidth() || renderHeight != c.TerminalHeight() ||
		offsetCol != c.OffsetCol() || offsetRow != c.OffsetRow() {
		draw.ClearScreen(t.w)
		c.Resize(renderWidth, renderHeight)
		c.SetOffset(offsetCol, offsetRow)
		c.ForceRedraw()
		t.cw.SetOffset(offsetCol, offsetRow)
		t.game.Session().Resize(c.Size())
	}
	return nil
}

// drawFrame renders the play field, then the overlay text on top of it.
func (t *terminal) drawFrame() error {
	c := t.canvas
	block, kind := t.game.Overlay(t.theme)

	// A panel that shrinks or goes away leaves text behind; repaint it all.
	if kind != t.prevOverlay || len(block) < len(t.prevBlock) {
		c.ForceRedraw()
	}
	t.prevOverlay = kind
	t.prevBlock = block

	t.game.Paint(c, t.plain)
	c.Render(t.cw)
	c.RenderBorder(t.cw)

	if block != "" {
		width, height := c.TerminalWidth(), c.TerminalHeight()
		col, row := ui.Centre(block, width, height)
		t.cw.WriteBlock(col, row, ui.Lines(block), width, height)
	}

	return t.cw.Flush()
}
