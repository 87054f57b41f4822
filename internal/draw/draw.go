// Package draw renders colour graphics to a terminal using half-block cells.
package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Stop is one colour stop of a gradient.
type Stop struct {
	Offset float64 // 0..1
	Color  colorful.Color
}

// Gradient interpolates between ordered colour stops.
type Gradient []Stop

// At returns the colour at position t, clamped to the first and last stop.
func (g Gradient) At(t float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	if t <= g[0].Offset {
		return g[0].Color
	}
	for i := 1; i < len(g); i++ {
		if t <= g[i].Offset {
			a, b := g[i-1], g[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.BlendRgb(b.Color, (t-a.Offset)/span)
		}
	}
	return g[len(g)-1].Color
}

// Shader returns the colour of a filled shape at a logical position.
type Shader func(x, y float64) colorful.Color

// Solid returns a Shader that always yields col.
func Solid(col colorful.Color) Shader {
	return func(float64, float64) colorful.Color { return col }
}

// Radial returns a Shader for a radial gradient starting at radius r0
// around the focus (fx, fy) and ending at radius r1 around the centre (cx, cy).
func Radial(fx, fy, r0, cx, cy, r1 float64, g Gradient) Shader {
	return func(x, y float64) colorful.Color {
		// Blend the two centres by how far out the point is, so the
		// gradient is offset towards the focus near the middle.
		dc := math.Hypot(x-cx, y-cy)
		k := 0.0
		if r1 > 0 {
			k = math.Min(dc/r1, 1)
		}
		ox := fx + (cx-fx)*k
		oy := fy + (cy-fy)*k
		d := math.Hypot(x-ox, y-oy)
		span := r1 - r0
		if span <= 0 {
			return g.At(1)
		}
		return g.At((d - r0) / span)
	}
}

// Lighten adds amount (0..255) to every channel, saturating at white.
func Lighten(c colorful.Color, amount int) colorful.Color {
	return shift(c, amount)
}

// Darken subtracts amount (0..255) from every channel, saturating at black.
func Darken(c colorful.Color, amount int) colorful.Color {
	return shift(c, -amount)
}

func shift(c colorful.Color, amount int) colorful.Color {
	r, g, b := c.RGB255()
	return colorful.Color{
		R: float64(clampByte(int(r)+amount)) / 255,
		G: float64(clampByte(int(g)+amount)) / 255,
		B: float64(clampByte(int(b)+amount)) / 255,
	}
}

func clampByte(v int) int {
	return min(max(v, 0), 255)
}

// rgb packs a colour into 24 bits for cheap comparisons.
func rgb(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
