// Package render draws a game frame onto a drawing surface.
package render

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloonpop/internal/draw"
	"github.com/tomz197/balloonpop/internal/game"
	"github.com/tomz197/balloonpop/internal/object"
)

// Surface is anything the frame can be painted on. Coordinates are logical
// field units; alpha is the opacity of the operation.
type Surface interface {
	Size() (width, height float64)
	VerticalGradient(top, bottom colorful.Color)
	FillEllipse(cx, cy, rx, ry, rotation float64, shade draw.Shader, alpha float64)
	StrokeEllipse(cx, cy, rx, ry, width float64, col colorful.Color, alpha float64)
	FillCircle(cx, cy, r float64, col colorful.Color, alpha float64)
	FillPolygon(points []draw.Point, col colorful.Color, alpha float64)
	QuadCurve(p0, p1, p2 draw.Point, col colorful.Color, alpha float64)
	Text(x, y float64, s string, col colorful.Color, alpha float64)
}

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}

	goldenBody = draw.Gradient{
		{Offset: 0, Color: mustHex("#fff8dc")},
		{Offset: 0.4, Color: mustHex("#ffd700")},
		{Offset: 1, Color: mustHex("#daa520")},
	}
)

// Balloon part proportions, relative to the radius unless noted.
const (
	bodyWidth       = 0.85
	highlightX      = -0.25
	highlightY      = -0.35
	highlightRX     = 0.2
	highlightRY     = 0.3
	highlightTilt   = -0.3
	highlightAlpha  = 0.4
	knotHalfWidth   = 3.0 // Units
	knotDepth       = 5.0 // Units below the body
	stringAlpha     = 0.2
	stringMid       = 20.0 // Units below the body
	stringEnd       = 35.0
	ringWidth       = 2.0
	ringScaleX      = 1.2
	ringScaleY      = 1.35
	comboBannerY    = 70.0
	comboBannerText = 0.85
)

// Draw paints one frame: background, balloons in spawn order, particles,
// score labels and the combo banner.
func Draw(s Surface, f game.Frame) {
	s.VerticalGradient(f.Level.Background[0], f.Level.Background[1])

	for _, b := range f.Balloons {
		Balloon(s, b)
	}
	for _, p := range f.Particles {
		s.FillCircle(p.X, p.Y, p.Radius, p.Color, math.Max(p.Life, 0))
	}
	for _, l := range f.Labels {
		s.Text(l.X, l.Y, l.Value, white, l.Alpha())
	}

	if f.ShowCombo() {
		w, _ := s.Size()
		s.Text(w/2, comboBannerY, ComboText(f.Combo), white, comboBannerText)
	}
}

// ComboText is the banner shown during a streak.
func ComboText(combo int) string {
	return fmt.Sprintf("%dx COMBO!", combo)
}

// Balloon draws a single balloon. Popped and escaped balloons are skipped.
func Balloon(s Surface, b *object.Balloon) {
	if !b.Active() {
		return
	}
	a := b.Opacity
	r := b.Radius

	var body draw.Shader
	if b.Golden {
		body = draw.Radial(b.X, b.Y, 0, b.X, b.Y, r, goldenBody)
	} else {
		body = draw.Radial(b.X+r*highlightX, b.Y-r*0.3, r*0.1, b.X, b.Y, r, draw.Gradient{
			{Offset: 0, Color: draw.Lighten(b.Color, 60)},
			{Offset: 0.7, Color: b.Color},
			{Offset: 1, Color: draw.Darken(b.Color, 30)},
		})
	}
	s.FillEllipse(b.X, b.Y, r*bodyWidth, r, 0, body, a)

	s.FillEllipse(b.X+r*highlightX, b.Y+r*highlightY, r*highlightRX, r*highlightRY, highlightTilt,
		draw.Solid(white), highlightAlpha*a)

	bottom := b.Y + r
	s.FillPolygon([]draw.Point{
		{X: b.X - knotHalfWidth, Y: bottom - 2},
		{X: b.X, Y: bottom + knotDepth},
		{X: b.X + knotHalfWidth, Y: bottom - 2},
	}, draw.Darken(b.Color, 40), a)

	s.QuadCurve(
		draw.Point{X: b.X, Y: bottom + knotDepth},
		draw.Point{X: b.X + math.Sin(b.Age*2)*5, Y: bottom + stringMid},
		draw.Point{X: b.X + math.Sin(b.Age*1.5)*3, Y: bottom + stringEnd},
		black, stringAlpha*a)

	if b.Golden {
		s.StrokeEllipse(b.X, b.Y, r*ringScaleX, r*ringScaleY, ringWidth, object.Gold, RingAlpha(b.Age)*a)
	}
}

// RingAlpha is the pulsing opacity of the golden balloon ring.
func RingAlpha(age float64) float64 {
	return 0.3 + math.Sin(age*4)*0.15
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
