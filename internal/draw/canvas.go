package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// UnitsPerPixel is the default number of logical units per sub-pixel.
const UnitsPerPixel = 4.0

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters, plus a text layer on top. Drawing happens in
// logical coordinates that scale to terminal sub-pixels.
type Canvas struct {
	termWidth      int              // Terminal columns covered by the canvas
	termHeight     int              // Terminal rows covered by the canvas
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]

	text   []rune // Per cell; 0 means no text
	textFg []colorful.Color

	unit float64 // Logical units per sub-pixel

	// Offset for centering the render area when the terminal is larger than
	// the max resolution. 0-based columns/rows to skip.
	offsetCol int
	offsetRow int

	// Last frame written by Render, for diffing.
	prev      []cellKey
	prevValid bool

	renderBuf       strings.Builder
	numBuf          [20]byte
	intersectionBuf []float64
}

// cellKey is the packed appearance of one terminal cell.
type cellKey struct {
	ch     rune
	fg, bg uint32
}

// NewCanvas creates a canvas for the given terminal dimensions with
// UnitsPerPixel logical units per sub-pixel.
func NewCanvas(termWidth, termHeight int) *Canvas {
	return NewScaledCanvas(termWidth, termHeight, UnitsPerPixel)
}

// NewScaledCanvas creates a canvas with unit logical units per sub-pixel.
func NewScaledCanvas(termWidth, termHeight int, unit float64) *Canvas {
	if unit <= 0 {
		unit = 1
	}
	c := &Canvas{unit: unit}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions. The logical size
// follows the terminal; the scale stays the same.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]colorful.Color, c.subPixelHeight*termWidth)
	c.text = make([]rune, termWidth*termHeight)
	c.textFg = make([]colorful.Color, termWidth*termHeight)
	c.prev = make([]cellKey, termWidth*termHeight)
	c.prevValid = false
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prevValid = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels to black and removes all text.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.text)
}

// ForceRedraw makes the next Render write every cell.
func (c *Canvas) ForceRedraw() {
	c.prevValid = false
}

// Invalidate makes the next Render rewrite the given cell rectangle
// (0-based canvas cells), e.g. after text was drawn over it directly.
func (c *Canvas) Invalidate(col, row, width, height int) {
	if !c.prevValid {
		return
	}
	for y := max(row, 0); y < min(row+height, c.termHeight); y++ {
		for x := max(col, 0); x < min(col+width, c.termWidth); x++ {
			c.prev[y*c.termWidth+x] = cellKey{ch: -1}
		}
	}
}

// Size returns the logical width and height.
func (c *Canvas) Size() (width, height float64) {
	return c.LogicalWidth(), c.LogicalHeight()
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return float64(c.termWidth) * c.unit
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return float64(c.subPixelHeight) * c.unit
}

// TerminalWidth returns the column count covered by the canvas.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the row count covered by the canvas.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 0-based canvas cell.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	return int(math.Floor(x / c.unit)), int(math.Floor(y / (2 * c.unit)))
}

// TerminalToLogical converts a 0-based terminal cell to the logical point at
// its centre. ok is false when the cell lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	col -= c.offsetCol
	row -= c.offsetRow
	if col < 0 || row < 0 || col >= c.termWidth || row >= c.termHeight {
		return 0, 0, false
	}
	return (float64(col) + 0.5) * c.unit, (float64(row) + 0.5) * 2 * c.unit, true
}

// blend mixes col into the sub-pixel at (px, py) with the given opacity.
func (c *Canvas) blend(px, py int, col colorful.Color, alpha float64) {
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight || alpha <= 0 {
		return
	}
	i := py*c.termWidth + px
	if alpha >= 1 {
		c.pixels[i] = col
		return
	}
	c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
}

// Pixel returns the colour of the sub-pixel at (px, py).
func (c *Canvas) Pixel(px, py int) colorful.Color {
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return colorful.Color{}
	}
	return c.pixels[py*c.termWidth+px]
}

// Text writes s centred horizontally on the logical point (x, y). The text
// colour is blended over whatever lies beneath with the given opacity.
func (c *Canvas) Text(x, y float64, s string, col colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	cx, row := c.LogicalToTerminal(x, y)
	c.TextAt(cx-utf8.RuneCountInString(s)/2, row, s, col, alpha)
}

// TextAt writes s starting at the 0-based canvas cell (col, row).
func (c *Canvas) TextAt(col, row int, s string, fg colorful.Color, alpha float64) {
	if row < 0 || row >= c.termHeight {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.termWidth {
			i := row*c.termWidth + col
			c.text[i] = r
			c.textFg[i] = c.cellBackground(col, row).BlendRgb(fg, min(alpha, 1))
		}
		col++
	}
}

func (c *Canvas) cellBackground(col, row int) colorful.Color {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	return top.BlendRgb(bottom, 0.5)
}

// Cell returns the appearance of the 0-based canvas cell (col, row).
func (c *Canvas) Cell(col, row int) (ch rune, fg, bg colorful.Color) {
	i := row*c.termWidth + col
	if r := c.text[i]; r != 0 {
		return r, c.textFg[i], c.cellBackground(col, row)
	}
	return BlockUpperHalf, c.pixels[row*2*c.termWidth+col], c.pixels[(row*2+1)*c.termWidth+col]
}

// Cells calls fn for every cell of the canvas, in row-major order.
func (c *Canvas) Cells(fn func(col, row int, ch rune, fg, bg colorful.Color)) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			ch, fg, bg := c.Cell(col, row)
			fn(col, row, ch, fg, bg)
		}
	}
}

// Render writes the cells that changed since the last Render as truecolor
// ANSI sequences.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 8)

	var lastFg, lastBg uint32
	colorsSet := false
	for row := 0; row < c.termHeight; row++ {
		cursorCol := -1
		for col := 0; col < c.termWidth; col++ {
			ch, fg, bg := c.Cell(col, row)
			key := cellKey{ch: ch, fg: rgb(fg), bg: rgb(bg)}
			i := row*c.termWidth + col
			if c.prevValid && c.prev[i] == key {
				continue
			}
			c.prev[i] = key

			if cursorCol != col {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if !colorsSet || key.fg != lastFg {
				c.sgr(38, key.fg)
				lastFg = key.fg
			}
			if !colorsSet || key.bg != lastBg {
				c.sgr(48, key.bg)
				lastBg = key.bg
			}
			colorsSet = true
			c.renderBuf.WriteRune(ch)
			cursorCol = col + 1
		}
	}
	c.prevValid = true
	if colorsSet {
		c.renderBuf.WriteString("\033[0m")
	}

	writeChunks(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// sgr appends a 24-bit foreground (38) or background (48) colour sequence.
func (c *Canvas) sgr(kind int, v uint32) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(kind), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v>>16&0xff), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v>>8&0xff), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(v&0xff), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.WriteString("\033[0;90m")
	bar := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + bar + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + bar + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + bar)
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + bar)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			r := strconv.Itoa(row)
			buf.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}
	buf.WriteString("\033[0m")

	io.WriteString(w, buf.String())
}
