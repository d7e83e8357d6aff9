package input

import (
	"bufio"
	"strconv"
	"strings"
)

// Input is everything that arrived since the previous frame.
type Input struct {
	Keys        []Key        // In arrival order
	Mouse       []MouseEvent // Left-button presses and releases
	FocusLost   bool
	FocusGained bool
	Closed      bool   // The reader hit EOF or an error
	Pressed     []byte // Bytes received this frame
}

// MouseEvent is a left-button press or release at a 0-based terminal cell.
type MouseEvent struct {
	X, Y  int
	Press bool
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte // incomplete CSI sequence carried into the next frame
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// maxSequence bounds an escape sequence, introducer included. Longer
// sequences are dropped so a peer cannot grow the carried buffer.
const maxSequence = 32

// ReadInput drains all available bytes from the stream without blocking
// and decodes them. A lone ESC at the end is held for one frame in case it
// starts a sequence split across reads.
func ReadInput(s *Stream) Input {
	buf := s.pending
	carried := len(buf)
	s.pending = nil

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

	in, rest := parse(buf, s.closed || len(buf) == carried)
	in.Pressed = buf[carried:]
	in.Closed = s.closed
	if !s.closed {
		s.pending = rest
	}
	return in
}

// Parse decodes buf. An escape sequence cut off at the end of buf, or a
// trailing lone ESC, is returned as rest so the caller can retry it with
// more bytes.
func Parse(buf []byte) (in Input, rest []byte) {
	return parse(buf, false)
}

// parse decodes buf. With final set a trailing lone ESC is the Escape key.
func parse(buf []byte, final bool) (in Input, rest []byte) {
	in.Pressed = buf
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+1 == len(buf) && !final {
			return in, []byte{'\x1b'}
		}
		if b != '\x1b' || i+1 >= len(buf) || (buf[i+1] != '[' && buf[i+1] != 'O') {
			if k := keyForByte(b); k != KeyNone {
				in.Keys = append(in.Keys, k)
			}
			continue
		}

		// ESC [ ... or ESC O ...: find the final byte.
		end := i + 2
		for end < len(buf) && end-i < maxSequence && !isFinal(buf[end]) {
			end++
		}
		switch {
		case end-i >= maxSequence:
			// Oversized: skip the rest of its parameter bytes.
			for end < len(buf) && !isFinal(buf[end]) {
				end++
			}
			i = end
		case end >= len(buf):
			return in, append([]byte(nil), buf[i:]...)
		default:
			decodeSequence(&in, buf[i+1], buf[i+2:end], buf[end])
			i = end
		}
	}
	return in, nil
}

// isFinal reports whether b terminates a CSI sequence.
func isFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

func decodeSequence(in *Input, intro byte, params []byte, final byte) {
	switch {
	case len(params) == 0 && final == 'A':
		in.Keys = append(in.Keys, KeyUp)
	case len(params) == 0 && final == 'B':
		in.Keys = append(in.Keys, KeyDown)
	case len(params) == 0 && final == 'C':
		in.Keys = append(in.Keys, KeyRight)
	case len(params) == 0 && final == 'D':
		in.Keys = append(in.Keys, KeyLeft)
	case intro == '[' && len(params) == 0 && final == 'I':
		in.FocusGained = true
	case intro == '[' && len(params) == 0 && final == 'O':
		in.FocusLost = true
	case intro == '[' && len(params) > 0 && params[0] == '<' && (final == 'M' || final == 'm'):
		if ev, ok := parseSGRMouse(string(params[1:]), final == 'M'); ok {
			in.Mouse = append(in.Mouse, ev)
		}
	}
}

// parseSGRMouse decodes "button;x;y" of an SGR (1006) mouse report. Only
// the left button counts; motion and wheel reports are dropped.
func parseSGRMouse(s string, press bool) (MouseEvent, bool) {
	parts := strings.Split(s, ";")
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return MouseEvent{}, false
		}
		n[i] = v
	}
	if n[0]&^0b11100 != 0 { // modifiers allowed, left button only
		return MouseEvent{}, false
	}
	return MouseEvent{X: n[1] - 1, Y: n[2] - 1, Press: press}, true
}

// KeyForRune maps a printable or control character to a key. Frontends
// that decode escape sequences themselves use it for plain characters.
func KeyForRune(r rune) Key {
	if r < 0 || r > 0x7f {
		return KeyNone
	}
	return keyForByte(byte(r))
}

func keyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', 0x03:
		return KeyQuit
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'w', 'W', 'k', 'K':
		return KeyUp
	case 's', 'S', 'j', 'J':
		return KeyDown
	case 'p', 'P':
		return KeyPause
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	case '\x1b':
		return KeyEscape
	}
	return KeyNone
}
