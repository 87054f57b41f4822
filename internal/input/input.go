// Package input turns raw terminal bytes into game actions and mouse clicks.
package input

import (
	"bufio"
	"io"
	"time"
)

// escapeWait is how long a lone ESC is held back waiting for the rest of
// a terminal report before it counts as the Escape key.
const escapeWait = 25 * time.Millisecond

// Click is a left mouse button press on a terminal cell (0-based).
type Click struct {
	Col, Row int
}

// Input represents the current frame's input.
// Actions are edge-triggered: each is set at most once per frame no matter
// how many times its key arrived.
type Input struct {
	Quit    bool // q, Q or Ctrl-C
	Pause   bool // Escape, p or P
	Confirm bool // Space or Enter
	Restart bool // r or R
	Menu    bool // m or M
	Clicks  []Click
	Pressed []byte // Raw bytes received this frame
	Closed  bool   // The input source has ended
}

// Active reports whether the player did anything this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0 || len(in.Clicks) > 0
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete escape sequence from the previous frame
	closed  bool

	escSince time.Time // When the pending lone ESC arrived
	now      func() time.Time
}

func (s *Stream) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking)
// and parses them.
//
// A lone ESC at the end of the bytes is held back, since it may begin a
// mouse report whose remainder has not arrived yet. It becomes the Escape
// key once escapeWait passes with nothing new, or when a byte that cannot
// continue a report follows it.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	carried := len(buf)

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	fresh := len(buf) > carried
	var in Input
	if carried == 1 && isLoneEscape(buf[:1]) && len(buf) > 1 && !startsSequence(buf[1]) {
		// The held ESC was a key press of its own.
		addEscapeKey(&in, buf[:1])
		buf = buf[1:]
	}

	next, rest := Parse(buf)
	Merge(&in, next)
	switch {
	case s.closed:
		addEscapeKey(&in, rest)
		in.Closed = true
		in.Quit = true
	case isLoneEscape(rest):
		if !fresh && s.clock().Sub(s.escSince) >= escapeWait {
			addEscapeKey(&in, rest)
			break
		}
		if fresh {
			s.escSince = s.clock()
		}
		s.pending = []byte{'\x1b'}
	case len(rest) > 0:
		s.pending = append([]byte(nil), rest...)
	}
	return in
}

// ParseComplete decodes buf when no more bytes will follow it, so a
// trailing ESC is the Escape key. Other unfinished sequences are dropped.
func ParseComplete(buf []byte) Input {
	in, rest := Parse(buf)
	addEscapeKey(&in, rest)
	return in
}

// addEscapeKey records rest as the Escape key if it is a lone ESC.
func addEscapeKey(in *Input, rest []byte) {
	if isLoneEscape(rest) {
		in.Pause = true
		in.Pressed = append(in.Pressed, rest...)
	}
}

// startsSequence reports whether b can follow ESC in a terminal report.
func startsSequence(b byte) bool {
	return b == '[' || b == 'O'
}

// Merge folds src into dst.
func Merge(dst *Input, src Input) {
	dst.Quit = dst.Quit || src.Quit
	dst.Pause = dst.Pause || src.Pause
	dst.Confirm = dst.Confirm || src.Confirm
	dst.Restart = dst.Restart || src.Restart
	dst.Menu = dst.Menu || src.Menu
	dst.Clicks = append(dst.Clicks, src.Clicks...)
	dst.Pressed = append(dst.Pressed, src.Pressed...)
}

func isLoneEscape(b []byte) bool {
	return len(b) == 1 && b[0] == '\x1b'
}

// Parse decodes buf. An escape sequence cut off at the end of buf,
// including a trailing lone ESC, is returned in rest so it can be
// completed by the next read.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&in, b)
			in.Pressed = append(in.Pressed, b)
			i++
			continue
		}

		n, click, complete := parseEscape(buf[i:])
		if !complete {
			return in, buf[i:]
		}
		if n == 1 {
			in.Pause = true
		}
		if click != nil {
			in.Clicks = append(in.Clicks, *click)
		}
		in.Pressed = append(in.Pressed, buf[i:i+n]...)
		i += n
	}
	return in, nil
}

// applyByte maps a single key byte to its action.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'p', 'P':
		in.Pause = true
	case ' ', '\r', '\n':
		in.Confirm = true
	case 'r', 'R':
		in.Restart = true
	case 'm', 'M':
		in.Menu = true
	}
}

// parseEscape measures the escape sequence at the start of data.
// An ESC followed by another ESC is the Escape key. complete is false when
// data ends after the ESC or inside a CSI sequence.
func parseEscape(data []byte) (n int, click *Click, complete bool) {
	if len(data) == 1 {
		return 0, nil, false
	}
	if data[1] == '\x1b' {
		return 1, nil, true
	}

	switch data[1] {
	case '[':
		if len(data) >= 3 && data[2] == '<' {
			return parseSGRMouse(data)
		}
		// CSI: parameters then a final byte in 0x40..0x7e.
		for j := 2; j < len(data); j++ {
			if data[j] >= 0x40 && data[j] <= 0x7e {
				return j + 1, nil, true
			}
		}
		return 0, nil, false
	case 'O':
		// SS3 (F1-F4, keypad arrows)
		if len(data) < 3 {
			return 0, nil, false
		}
		return 3, nil, true
	}
	// Alt+key: swallow both bytes.
	return 2, nil, true
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y M/m. Only left button presses
// produce a click; releases, motion, wheel and other buttons are consumed.
func parseSGRMouse(data []byte) (int, *Click, bool) {
	end := 3
	for end < len(data) && data[end] != 'M' && data[end] != 'm' {
		if end >= 32 {
			// Garbage: drop the introducer and carry on.
			return 3, nil, true
		}
		end++
	}
	if end >= len(data) {
		return 0, nil, false
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1, nil, true
	}

	press := data[end] == 'M'
	left := btn&0x03 == 0
	motion := btn&32 != 0
	wheel := btn&64 != 0
	if !press || !left || motion || wheel || x < 1 || y < 1 {
		return end + 1, nil, true
	}
	return end + 1, &Click{Col: x - 1, Row: y - 1}, true
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
