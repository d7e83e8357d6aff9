package draw

import (
	"io"
	"strings"
)

// Canvas is a colored pixel buffer with 2x vertical resolution: each
// terminal cell shows two stacked pixels using half-block characters.
// Render only emits cells that changed since the previous frame.
type Canvas struct {
	termWidth      int     // Terminal columns covered by the canvas
	termHeight     int     // Terminal rows covered by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// What the terminal currently shows, per cell: top<<8 | bottom.
	shown       []uint16
	forceRedraw bool

	// Offset for centering the canvas in a larger terminal. These are
	// 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf []byte // Reusable output buffer
}

// NewCanvas creates a canvas covering width columns and height rows.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize changes the canvas dimensions. Contents are cleared and the next
// Render repaints every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	termWidth, termHeight = max(termWidth, 0), max(termHeight, 0)
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]Color, c.subPixelHeight*termWidth)
	c.shown = make([]uint16, termHeight*termWidth)
	c.forceRedraw = true
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.shown[y*c.termWidth+x] = 0xffff
	}
}

// Set colors the pixel at (x, y). Out-of-range pixels are ignored.
func (c *Canvas) Set(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// At returns the color of the pixel at (x, y), or ColorNone out of range.
func (c *Canvas) At(x, y int) Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return ColorNone
}

// FillRect colors a w x h block of pixels with its top-left at (x, y).
func (c *Canvas) FillRect(x, y, w, h int, color Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			c.Set(px, py, color)
		}
	}
}

// Render outputs changed cells to w using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	buf := c.renderBuf[:0]
	force := c.forceRedraw
	c.forceRedraw = false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			state := uint16(top)<<8 | uint16(bottom)
			idx := row*c.termWidth + col
			if !force && c.shown[idx] == state {
				continue
			}
			c.shown[idx] = state

			buf = appendCursor(buf, row+1+c.offsetRow, col+1+c.offsetCol)
			buf = appendCell(buf, top, bottom)
		}
	}
	if len(buf) > 0 {
		buf = append(buf, ColorReset...)
		_, _ = w.Write(buf)
	}
	c.renderBuf = buf
}

// appendCell appends the escape codes and glyph for one terminal cell.
func appendCell(b []byte, top, bottom Color) []byte {
	switch {
	case top == ColorNone && bottom == ColorNone:
		b = append(b, ColorReset...)
		return append(b, ' ')
	case top == bottom:
		b = appendBG(appendFG(b, top), ColorNone)
		return append(b, string(BlockFull)...)
	case top == ColorNone:
		b = appendBG(appendFG(b, bottom), ColorNone)
		return append(b, string(BlockLowerHalf)...)
	default:
		b = appendBG(appendFG(b, top), bottom)
		return append(b, string(BlockUpperHalf)...)
	}
}

// RenderBorder draws a box around the canvas area. Sides without room
// (offset 0) are skipped.
func (c *Canvas) RenderBorder(w io.Writer) {
	left, right := c.offsetCol, c.offsetCol+c.termWidth+1
	top, bottom := c.offsetRow, c.offsetRow+c.termHeight+1
	line := strings.Repeat("─", c.termWidth)

	var b []byte
	if top >= 1 {
		if left >= 1 {
			b = append(appendCursor(b, top, left), "┌"+line+"┐"...)
			b = append(appendCursor(b, bottom, left), "└"+line+"┘"...)
		} else {
			b = append(appendCursor(b, top, left+1), line...)
			b = append(appendCursor(b, bottom, left+1), line...)
		}
	}
	if left >= 1 {
		for row := top + 1; row < bottom; row++ {
			b = append(appendCursor(b, row, left), "│"...)
			b = append(appendCursor(b, row, right), "│"...)
		}
	}
	_, _ = w.Write(b)
}
