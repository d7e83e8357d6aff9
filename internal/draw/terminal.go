package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// maxChunkSize keeps each write under a typical MTU so frames stream
// smoothly over ssh.
const maxChunkSize = 1400

const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqReportOn   = "\033[?1000h\033[?1006h\033[?1004h" // SGR mouse buttons, focus in/out
	seqReportOff  = "\033[?1004l\033[?1006l\033[?1000l"
)

// Setup prepares a terminal for a game session: cursor hidden, mouse
// button and focus reports on, screen cleared.
func Setup(w io.Writer) error {
	_, err := io.WriteString(w, seqHideCursor+seqReportOn+seqClear)
	return err
}

// Teardown undoes Setup and leaves an empty screen in default colors.
func Teardown(w io.Writer) error {
	_, err := io.WriteString(w, seqReportOff+ColorReset+seqClear+seqShowCursor)
	return err
}

// SizeFunc reports a terminal's size in columns and rows.
type SizeFunc func() (width, height int, err error)

// StdoutSize is the SizeFunc of the process' own terminal.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Frame queues the output of one frame. Text is positioned relative to the
// board, so callers never deal with the layout offset. Nothing reaches the
// terminal until Flush.
type Frame struct {
	out      io.Writer
	buf      []byte
	col, row int // 0-based terminal position of the board's top-left cell
}

// NewFrame returns a Frame writing to w.
func NewFrame(w io.Writer) *Frame {
	return &Frame{out: w}
}

// Place moves the board origin to where l puts it.
func (f *Frame) Place(l Layout) {
	f.col, f.row = l.OffsetCol, l.OffsetRow
}

// Clear queues a full screen clear.
func (f *Frame) Clear() {
	f.buf = append(f.buf, seqClear...)
}

// Text queues s at the 1-based board position (col, row).
func (f *Frame) Text(col, row int, s string) {
	f.buf = appendCursor(f.buf, row+f.row, col+f.col)
	f.buf = append(f.buf, s...)
}

// Write queues raw bytes, e.g. a rendered canvas.
func (f *Frame) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	return len(p), nil
}

// Flush sends the queued output, one write per chunk, and starts the next
// frame.
func (f *Frame) Flush() error {
	data := f.buf
	f.buf = f.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := f.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// appendCursor appends a move to the 1-based terminal position (row, col).
func appendCursor(b []byte, row, col int) []byte {
	b = append(b, "\033["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	return append(b, 'H')
}
