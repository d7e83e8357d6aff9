package draw

import "strconv"

// Color is a palette index for canvas pixels. The zero value is an empty
// pixel that shows the terminal background.
type Color uint8

const (
	ColorNone Color = iota
	ColorSnakeHead
	ColorSnakeBody
	ColorFood
	ColorGrid
	colorCount
)

// rgb holds the 24-bit value of each palette entry.
var rgb = [colorCount][3]uint8{
	ColorSnakeHead: {0x00, 0xff, 0x41},
	ColorSnakeBody: {0x00, 0xcc, 0x33},
	ColorFood:      {0xff, 0x00, 0x80},
	ColorGrid:      {0x1a, 0x1a, 0x1a},
}

// Escape sequences for text styling.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorBrightCyan = "\033[96m"
	ColorYellow     = "\033[93m"
	ColorGreen      = "\033[92m"
	ColorMagenta    = "\033[95m"
)

// appendFG appends the foreground escape for c (default color for ColorNone).
func appendFG(b []byte, c Color) []byte {
	if c == ColorNone || c >= colorCount {
		return append(b, "\033[39m"...)
	}
	return appendRGB(append(b, "\033[38;2;"...), c)
}

// appendBG appends the background escape for c (default color for ColorNone).
func appendBG(b []byte, c Color) []byte {
	if c == ColorNone || c >= colorCount {
		return append(b, "\033[49m"...)
	}
	return appendRGB(append(b, "\033[48;2;"...), c)
}

func appendRGB(b []byte, c Color) []byte {
	v := rgb[c]
	b = strconv.AppendUint(b, uint64(v[0]), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(v[1]), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(v[2]), 10)
	return append(b, 'm')
}

// RGB returns the 24-bit value of c. ok is false for ColorNone.
func RGB(c Color) (r, g, b uint8, ok bool) {
	if c == ColorNone || c >= colorCount {
		return 0, 0, 0, false
	}
	v := rgb[c]
	return v[0], v[1], v[2], true
}
