package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// maxChunkSize is the largest single write. It keeps each write within a
// typical 1500 byte MTU so SSH clients get a steady stream of packets.
const maxChunkSize = 1400

// Terminal control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqMouseOn    = "\033[?1000h\033[?1006h" // button presses, SGR encoding
	seqMouseOff   = "\033[?1006l\033[?1000l"
	seqReset      = "\033[0m"
)

// writeChunks writes data to w in pieces of at most maxChunkSize bytes.
func writeChunks(w io.Writer, data string) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(w, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// ChunkWriter collects one frame of terminal output and sends it in
// MTU-sized chunks on Flush. Positions are 0-based cells of the canvas
// area; the canvas offset is added when the cursor is moved.
type ChunkWriter struct {
	frame  strings.Builder
	out    *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter for w with the given canvas offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the canvas area, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Write implements io.Writer so Canvas.Render can target the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// WriteString appends raw output to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt writes s starting at canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow+1), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol+1), 10))
	cw.frame.WriteByte('H')
	cw.frame.WriteString(s)
}

// WriteBlock writes lines one below the other from (col, row), clipped to
// a width x height area. Lines may carry ANSI styling.
func (cw *ChunkWriter) WriteBlock(col, row int, lines []string, width, height int) {
	if col >= width {
		return
	}
	for i, line := range lines {
		if row+i >= height {
			break
		}
		cw.WriteAt(col, row+i, ansi.Truncate(line, width-col, ""))
	}
	cw.frame.WriteString(seqReset)
}

// Flush sends the frame and starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	if err := writeChunks(cw.out, data); err != nil {
		return err
	}
	return cw.out.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the controlling terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func ClearScreen(w io.Writer)  { io.WriteString(w, seqClear) }
func HideCursor(w io.Writer)   { io.WriteString(w, seqHideCursor) }
func ShowCursor(w io.Writer)   { io.WriteString(w, seqShowCursor) }
func EnableMouse(w io.Writer)  { io.WriteString(w, seqMouseOn) }
func DisableMouse(w io.Writer) { io.WriteString(w, seqMouseOff) }
func ResetStyle(w io.Writer)   { io.WriteString(w, seqReset) }

// ClampTermSize limits the render area to maxWidth x maxHeight cells and
// centres it in the terminal.
func ClampTermSize(termWidth, termHeight, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, maxWidth)
	renderHeight = min(termHeight, maxHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
