package draw

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Fill paints the whole canvas with one colour.
func (c *Canvas) Fill(col colorful.Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// VerticalGradient paints the whole canvas from top to bottom.
func (c *Canvas) VerticalGradient(top, bottom colorful.Color) {
	h := c.subPixelHeight
	for py := 0; py < h; py++ {
		t := 0.0
		if h > 1 {
			t = float64(py) / float64(h-1)
		}
		col := top.BlendRgb(bottom, t)
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for i := range row {
			row[i] = col
		}
	}
}

// Line draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) Line(p1, p2 Point, col colorful.Color, alpha float64) {
	x1 := int(math.Floor(p1.X / c.unit))
	y1 := int(math.Floor(p1.Y / c.unit))
	x2 := int(math.Floor(p2.X / c.unit))
	y2 := int(math.Floor(p2.Y / c.unit))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.blend(x1, y1, col, alpha)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// QuadCurve strokes a quadratic Bézier curve from p0 to p2 with control point p1.
func (c *Canvas) QuadCurve(p0, p1, p2 Point, col colorful.Color, alpha float64) {
	length := math.Hypot(p1.X-p0.X, p1.Y-p0.Y) + math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	steps := max(int(length/c.unit), 1)

	prev := p0
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		p := Point{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		}
		// Joints are blended once.
		c.lineFrom(prev, p, col, alpha, i > 1)
		prev = p
	}
}

// lineFrom draws a line, optionally leaving out its first pixel.
func (c *Canvas) lineFrom(p1, p2 Point, col colorful.Color, alpha float64, skipFirst bool) {
	if !skipFirst {
		c.Line(p1, p2, col, alpha)
		return
	}
	x1 := int(math.Floor(p1.X / c.unit))
	y1 := int(math.Floor(p1.Y / c.unit))
	saved := c.Pixel(x1, y1)
	c.Line(p1, p2, col, alpha)
	if x1 >= 0 && x1 < c.termWidth && y1 >= 0 && y1 < c.subPixelHeight {
		c.pixels[y1*c.termWidth+x1] = saved
	}
}

// FillPolygon fills a polygon using the scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) FillPolygon(points []Point, col colorful.Color, alpha float64) {
	if len(points) < 3 {
		return
	}

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY / c.unit))
	yEnd := int(math.Ceil(maxY / c.unit))
	filled := false

	for y := yStart; y <= yEnd; y++ {
		scanY := (float64(y) + 0.5) * c.unit

		intersections := c.intersectionBuf[:0]
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]/c.unit - 0.5))
			xEnd := int(math.Floor(intersections[i+1]/c.unit - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.blend(x, y, col, alpha)
				filled = true
			}
		}
	}

	// Shapes smaller than a pixel still leave a mark.
	if !filled {
		var cx, cy float64
		for _, p := range points {
			cx += p.X
			cy += p.Y
		}
		n := float64(len(points))
		c.blend(int(math.Floor(cx/n/c.unit)), int(math.Floor(cy/n/c.unit)), col, alpha)
	}
}

// FillEllipse fills an ellipse centred on (cx, cy) with radii rx, ry,
// rotated by rotation radians, colouring each pixel with shade.
func (c *Canvas) FillEllipse(cx, cy, rx, ry, rotation float64, shade Shader, alpha float64) {
	if rx <= 0 || ry <= 0 || alpha <= 0 {
		return
	}
	sin, cos := math.Sincos(rotation)
	reach := math.Max(rx, ry)

	x0 := int(math.Floor((cx - reach) / c.unit))
	x1 := int(math.Ceil((cx + reach) / c.unit))
	y0 := int(math.Floor((cy - reach) / c.unit))
	y1 := int(math.Ceil((cy + reach) / c.unit))
	x0, x1 = max(x0, 0), min(x1, c.termWidth-1)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight-1)

	filled := false
	for py := y0; py <= y1; py++ {
		ly := (float64(py) + 0.5) * c.unit
		for px := x0; px <= x1; px++ {
			lx := (float64(px) + 0.5) * c.unit
			dx, dy := lx-cx, ly-cy
			u := (dx*cos + dy*sin) / rx
			v := (-dx*sin + dy*cos) / ry
			if u*u+v*v > 1 {
				continue
			}
			c.blend(px, py, shade(lx, ly), alpha)
			filled = true
		}
	}

	if !filled {
		c.blend(int(math.Floor(cx/c.unit)), int(math.Floor(cy/c.unit)), shade(cx, cy), alpha)
	}
}

// FillCircle fills a circle with a single colour.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	c.FillEllipse(cx, cy, r, r, 0, Solid(col), alpha)
}

// StrokeEllipse outlines an axis-aligned ellipse with a line of the given
// logical width. Lines thinner than a pixel are widened to one pixel.
func (c *Canvas) StrokeEllipse(cx, cy, rx, ry, width float64, col colorful.Color, alpha float64) {
	if rx <= 0 || ry <= 0 || alpha <= 0 {
		return
	}
	half := math.Max(width, c.unit) / 2

	x0 := max(int(math.Floor((cx-rx-half)/c.unit)), 0)
	x1 := min(int(math.Ceil((cx+rx+half)/c.unit)), c.termWidth-1)
	y0 := max(int(math.Floor((cy-ry-half)/c.unit)), 0)
	y1 := min(int(math.Ceil((cy+ry+half)/c.unit)), c.subPixelHeight-1)

	for py := y0; py <= y1; py++ {
		dy := (float64(py)+0.5)*c.unit - cy
		for px := x0; px <= x1; px++ {
			dx := (float64(px)+0.5)*c.unit - cx
			// Approximate distance to the outline: normalised radius error
			// scaled by the local radius.
			d := math.Hypot(dx/rx, dy/ry)
			if d == 0 {
				continue
			}
			local := math.Hypot(dx, dy) / d
			if math.Abs(d-1)*local <= half {
				c.blend(px, py, col, alpha)
			}
		}
	}
}
