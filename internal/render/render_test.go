package render

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloonpop/internal/draw"
	"github.com/tomz197/balloonpop/internal/game"
	"github.com/tomz197/balloonpop/internal/level"
	"github.com/tomz197/balloonpop/internal/object"
)

// recorder is a Surface that counts operations.
type recorder struct {
	gradients, ellipses, strokes, circles, polygons, curves int
	texts                                                   []string
	strokeAlpha                                             float64
}

func (r *recorder) Size() (float64, float64) { return 400, 300 }

func (r *recorder) VerticalGradient(top, bottom colorful.Color) { r.gradients++ }

func (r *recorder) FillEllipse(cx, cy, rx, ry, rotation float64, shade draw.Shader, alpha float64) {
	r.ellipses++
}

func (r *recorder) StrokeEllipse(cx, cy, rx, ry, width float64, col colorful.Color, alpha float64) {
	r.strokes++
	r.strokeAlpha = alpha
}

func (r *recorder) FillCircle(cx, cy, radius float64, col colorful.Color, alpha float64) {
	r.circles++
}

func (r *recorder) FillPolygon(points []draw.Point, col colorful.Color, alpha float64) {
	r.polygons++
}

func (r *recorder) QuadCurve(p0, p1, p2 draw.Point, col colorful.Color, alpha float64) {
	r.curves++
}

func (r *recorder) Text(x, y float64, s string, col colorful.Color, alpha float64) {
	r.texts = append(r.texts, s)
}

var _ Surface = (*draw.Canvas)(nil)

func TestDrawSkipsInactiveBalloons(t *testing.T) {
	red := colorful.Color{R: 1}
	f := game.Frame{
		Level: level.Default.At(1),
		Phase: game.PhaseRunning,
		Balloons: []*object.Balloon{
			{X: 100, Y: 100, Radius: 30, Color: red, Opacity: 1},
			{X: 200, Y: 100, Radius: 30, Color: red, Opacity: 1, Popped: true},
			{X: 300, Y: 100, Radius: 30, Color: red, Opacity: 1, Escaped: true},
		},
	}

	var r recorder
	Draw(&r, f)

	if r.gradients != 1 {
		t.Fatalf("background drawn %d times", r.gradients)
	}
	// Body and highlight per balloon.
	if r.ellipses != 2 || r.polygons != 1 || r.curves != 1 {
		t.Fatalf("drew %d ellipses %d knots %d strings, want one balloon", r.ellipses, r.polygons, r.curves)
	}
	if r.strokes != 0 {
		t.Fatalf("plain balloon got a golden ring")
	}
}

func TestGoldenBalloonHasRing(t *testing.T) {
	var r recorder
	Balloon(&r, &object.Balloon{X: 50, Y: 50, Radius: 30, Color: object.Gold, Golden: true, Opacity: 1})
	if r.strokes != 1 {
		t.Fatalf("golden ring drawn %d times, want 1", r.strokes)
	}
	if math.Abs(r.strokeAlpha-0.3) > 1e-9 {
		t.Fatalf("ring alpha at age 0 = %v, want 0.3", r.strokeAlpha)
	}
	if a := RingAlpha(math.Pi / 8); math.Abs(a-0.45) > 1e-9 {
		t.Fatalf("ring alpha peak = %v, want 0.45", a)
	}
}

func TestComboBanner(t *testing.T) {
	tests := []struct {
		phase game.Phase
		combo int
		want  bool
	}{
		{game.PhaseRunning, 1, false},
		{game.PhaseRunning, 2, true},
		{game.PhasePaused, 4, false},
		{game.PhaseLevelComplete, 4, false},
	}
	for _, tt := range tests {
		var r recorder
		Draw(&r, game.Frame{Level: level.Default.At(1), Phase: tt.phase, Combo: tt.combo})
		got := len(r.texts) == 1 && r.texts[0] == ComboText(tt.combo)
		if got != tt.want {
			t.Errorf("phase %v combo %d: banner %v (texts %q), want %v", tt.phase, tt.combo, got, r.texts, tt.want)
		}
	}
	if ComboText(3) != "3x COMBO!" {
		t.Fatalf("ComboText(3) = %q", ComboText(3))
	}
}

func TestDrawParticlesAndLabels(t *testing.T) {
	f := game.Frame{
		Level:     level.Default.At(2),
		Phase:     game.PhaseRunning,
		Particles: []*object.Particle{{X: 1, Y: 1, Radius: 3, Life: 0.5}, {X: 2, Y: 2, Radius: 3, Life: 1}},
		Labels:    []*object.Label{object.NewScoreLabel(10, 10, 40)},
	}
	var r recorder
	Draw(&r, f)
	if r.circles != 2 {
		t.Fatalf("particles drawn = %d, want 2", r.circles)
	}
	if len(r.texts) != 1 || r.texts[0] != "+40" {
		t.Fatalf("texts = %q, want [+40]", r.texts)
	}
}

func TestDrawOnCanvas(t *testing.T) {
	c := draw.NewCanvas(60, 20)
	b := &object.Balloon{X: 120, Y: 80, Radius: 30, Color: colorful.Color{R: 1}, Opacity: 1}
	Draw(c, game.Frame{Level: level.Default.At(1), Phase: game.PhaseRunning, Balloons: []*object.Balloon{b}})

	px, py := 30, 20
	body := c.Pixel(px+2, py+2)
	bg := c.Pixel(2, 2)
	if body.R <= body.B {
		t.Fatalf("balloon centre %s is not red", body.Hex())
	}
	if bg == body {
		t.Fatalf("balloon not drawn over the background")
	}
}
