package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	red   = colorful.Color{R: 1}
	blue  = colorful.Color{B: 1}
)

func TestCanvasLogicalSize(t *testing.T) {
	c := NewCanvas(80, 24)
	w, h := c.Size()
	if w != 320 || h != 192 {
		t.Fatalf("Size = %vx%v, want 320x192", w, h)
	}
	c.Resize(100, 30)
	if c.LogicalWidth() != 400 || c.LogicalHeight() != 240 {
		t.Fatalf("after resize = %vx%v, want 400x240", c.LogicalWidth(), c.LogicalHeight())
	}
}

func TestTerminalToLogical(t *testing.T) {
	c := NewCanvas(40, 20)
	c.SetOffset(5, 2)

	x, y, ok := c.TerminalToLogical(5, 2)
	if !ok || x != 2 || y != 4 {
		t.Fatalf("top-left cell = (%v, %v, %v), want (2, 4, true)", x, y, ok)
	}
	x, y, ok = c.TerminalToLogical(14, 11)
	if !ok || x != 38 || y != 76 {
		t.Fatalf("cell (14, 11) = (%v, %v), want (38, 76)", x, y)
	}
	if _, _, ok := c.TerminalToLogical(4, 2); ok {
		t.Fatalf("cell left of the canvas should be outside")
	}
	if _, _, ok := c.TerminalToLogical(45, 2); ok {
		t.Fatalf("cell right of the canvas should be outside")
	}

	col, row := c.LogicalToTerminal(38, 76)
	if col != 9 || row != 9 {
		t.Fatalf("LogicalToTerminal = (%d, %d), want (9, 9)", col, row)
	}
}

func TestVerticalGradient(t *testing.T) {
	c := NewCanvas(4, 5)
	c.VerticalGradient(red, blue)

	if got := c.Pixel(0, 0); rgb(got) != rgb(red) {
		t.Fatalf("top pixel = %s, want red", got.Hex())
	}
	if got := c.Pixel(3, 9); rgb(got) != rgb(blue) {
		t.Fatalf("bottom pixel = %s, want blue", got.Hex())
	}
}

func TestFillEllipseCoversInsideOnly(t *testing.T) {
	c := NewCanvas(40, 20)
	c.FillEllipse(80, 80, 40, 20, 0, Solid(white), 1)

	if rgb(c.Pixel(20, 20)) != rgb(white) {
		t.Fatalf("centre pixel not filled")
	}
	if rgb(c.Pixel(20, 27)) == rgb(white) {
		t.Fatalf("pixel below the minor radius filled")
	}
	if rgb(c.Pixel(29, 20)) != rgb(white) {
		t.Fatalf("pixel inside the major radius not filled")
	}
	if rgb(c.Pixel(31, 20)) == rgb(white) {
		t.Fatalf("pixel outside the major radius filled")
	}
}

func TestFillEllipseRotation(t *testing.T) {
	c := NewCanvas(40, 20)
	// A tall ellipse turned a quarter turn lies flat.
	c.FillEllipse(80, 80, 8, 40, math.Pi/2, Solid(white), 1)

	if rgb(c.Pixel(29, 20)) != rgb(white) {
		t.Fatalf("rotated ellipse does not reach sideways")
	}
	if rgb(c.Pixel(20, 27)) == rgb(white) {
		t.Fatalf("rotated ellipse still reaches down")
	}
}

func TestTinyShapesLeaveAMark(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillCircle(13, 13, 0.5, white, 1)
	if rgb(c.Pixel(3, 3)) != rgb(white) {
		t.Fatalf("sub-pixel circle vanished")
	}
}

func TestBlendHalfAlpha(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Fill(colorful.Color{})
	c.FillCircle(2, 2, 1, white, 0.5)

	r, g, b := c.Pixel(0, 0).RGB255()
	if r < 126 || r > 128 || g != r || b != r {
		t.Fatalf("half white over black = (%d, %d, %d), want grey", r, g, b)
	}
}

func TestFillPolygonTriangle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillPolygon([]Point{{0, 0}, {80, 0}, {0, 80}}, red, 1)

	if rgb(c.Pixel(1, 1)) != rgb(red) {
		t.Fatalf("inside of triangle not filled")
	}
	if rgb(c.Pixel(18, 18)) == rgb(red) {
		t.Fatalf("outside of triangle filled")
	}
}

func TestStrokeEllipseLeavesCentreEmpty(t *testing.T) {
	c := NewCanvas(40, 20)
	c.StrokeEllipse(80, 80, 40, 40, 2, white, 1)

	if rgb(c.Pixel(20, 20)) == rgb(white) {
		t.Fatalf("stroke filled the centre")
	}
	if rgb(c.Pixel(29, 20)) != rgb(white) && rgb(c.Pixel(30, 20)) != rgb(white) {
		t.Fatalf("outline missing on the right edge")
	}
}

func TestQuadCurveEndpoints(t *testing.T) {
	c := NewCanvas(20, 10)
	c.QuadCurve(Point{2, 2}, Point{40, 2}, Point{70, 70}, white, 1)

	if rgb(c.Pixel(0, 0)) != rgb(white) {
		t.Fatalf("curve start missing")
	}
	if rgb(c.Pixel(17, 17)) != rgb(white) {
		t.Fatalf("curve end missing")
	}
}

func TestTextLayer(t *testing.T) {
	c := NewCanvas(20, 5)
	c.Fill(colorful.Color{})
	c.Text(40, 2, "+50", white, 1)

	ch, fg, _ := c.Cell(9, 0)
	if ch != '+' || rgb(fg) != rgb(white) {
		t.Fatalf("cell (9, 0) = %q %s, want '+' white", ch, fg.Hex())
	}
	if ch, _, _ := c.Cell(11, 0); ch != '0' {
		t.Fatalf("cell (11, 0) = %q, want '0'", ch)
	}
	if ch, _, _ := c.Cell(12, 0); ch != BlockUpperHalf {
		t.Fatalf("cell after the text = %q, want a half block", ch)
	}

	c.Clear()
	if ch, _, _ := c.Cell(9, 0); ch != BlockUpperHalf {
		t.Fatalf("Clear kept text")
	}
}

func TestRenderDiffsFrames(t *testing.T) {
	c := NewCanvas(10, 4)
	c.Fill(red)

	var buf bytes.Buffer
	c.Render(&buf)
	first := buf.String()
	if strings.Count(first, string(BlockUpperHalf)) != 40 {
		t.Fatalf("first frame wrote %d cells, want 40", strings.Count(first, string(BlockUpperHalf)))
	}
	if !strings.Contains(first, "\033[38;2;255;0;0m") {
		t.Fatalf("missing truecolor sequence in %q", first)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", buf.String())
	}

	c.FillCircle(2, 2, 1, blue, 1)
	buf.Reset()
	c.Render(&buf)
	if n := strings.Count(buf.String(), string(BlockUpperHalf)); n != 1 {
		t.Fatalf("one changed pixel rewrote %d cells", n)
	}
	if !strings.HasPrefix(buf.String(), "\033[1;1H") {
		t.Fatalf("changed cell not addressed: %q", buf.String())
	}

	c.Invalidate(0, 0, 2, 2)
	buf.Reset()
	c.Render(&buf)
	if n := strings.Count(buf.String(), string(BlockUpperHalf)); n != 4 {
		t.Fatalf("invalidated region rewrote %d cells, want 4", n)
	}

	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	if n := strings.Count(buf.String(), string(BlockUpperHalf)); n != 40 {
		t.Fatalf("forced redraw wrote %d cells, want 40", n)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetOffset(3, 4)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[5;4H") {
		t.Fatalf("render did not start at the offset: %q", buf.String())
	}
}

func TestGradientAt(t *testing.T) {
	g := Gradient{{0, red}, {0.5, white}, {1, blue}}
	if rgb(g.At(-1)) != rgb(red) || rgb(g.At(2)) != rgb(blue) {
		t.Fatalf("gradient not clamped at the ends")
	}
	if rgb(g.At(0.5)) != rgb(white) {
		t.Fatalf("middle stop = %s, want white", g.At(0.5).Hex())
	}
	r, gr, b := g.At(0.25).RGB255()
	if r != 255 || gr < 126 || gr > 128 || b < 126 || b > 128 {
		t.Fatalf("At(0.25) = (%d, %d, %d), want halfway to white", r, gr, b)
	}
}

func TestLightenDarken(t *testing.T) {
	c, _ := colorful.Hex("#ff6b6b")
	if got := Lighten(c, 60).Hex(); got != "#ffa7a7" {
		t.Errorf("Lighten = %s, want #ffa7a7", got)
	}
	if got := Darken(c, 30).Hex(); got != "#e14d4d" {
		t.Errorf("Darken = %s, want #e14d4d", got)
	}
	if got := Darken(c, 200).Hex(); got != "#370000" {
		t.Errorf("Darken saturates = %s, want #370000", got)
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := ClampTermSize(300, 100, 200, 60)
	if w != 200 || h != 60 || col != 50 || row != 20 {
		t.Fatalf("ClampTermSize = %d %d %d %d", w, h, col, row)
	}
	w, h, col, row = ClampTermSize(80, 24, 200, 60)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Fatalf("small terminal changed: %d %d %d %d", w, h, col, row)
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)
	cw.WriteAt(1, 1, "hi")
	if buf.Len() != 0 {
		t.Fatalf("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[5;4Hhi" {
		t.Fatalf("flushed %q", got)
	}
}

func TestChunkWriterBlockClips(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	cw.WriteBlock(2, 1, []string{"abcdef", "gh", "ij"}, 5, 3)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[2;3Habc\033[3;3Hgh\033[0m"
	if got := buf.String(); got != want {
		t.Fatalf("block = %q, want %q", got, want)
	}
}
