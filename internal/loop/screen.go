package loop

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloonpop/internal/draw"
	"github.com/tomz197/balloonpop/internal/render"
	"github.com/tomz197/balloonpop/internal/ui"
)

var (
	hudText  = colorful.Color{R: 1, G: 1, B: 1}
	hudStrip = colorful.Color{R: 0.13, G: 0.13, B: 0.2}
)

// OverlayKind identifies the text block drawn over the play field.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayPanel
	OverlayIdle
	OverlayShutdown
)

// Paint draws the current frame and the HUD line onto c.
func (g *Game) Paint(c *draw.Canvas, plain *ui.Theme) {
	c.Clear()
	render.Draw(c, g.session.Frame())

	// The HUD occupies the top row; balloons pass beneath it.
	w, _ := c.Size()
	rowHeight := 2 * draw.UnitsPerPixel
	c.FillPolygon([]draw.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: rowHeight}, {X: 0, Y: rowHeight}}, hudStrip, hudBackdrop)
	c.TextAt(0, 0, plain.HUD(g.session.HUD(), c.TerminalWidth()), hudText, 1)
}

// Overlay returns the block to show over the play field and its kind.
// The shutdown notice wins over the idle warning, which wins over panels.
func (g *Game) Overlay(t *ui.Theme) (string, OverlayKind) {
	switch {
	case g.ShuttingDown():
		return t.ShutdownNotice(g.ShutdownRemaining()), OverlayShutdown
	case g.idle:
		return t.IdleWarning(g.IdleRemaining()), OverlayIdle
	}
	s := g.session
	if block := t.Panel(s.Modal(), s.Summary(), s.HUD()); block != "" {
		return block, OverlayPanel
	}
	return "", OverlayNone
}
