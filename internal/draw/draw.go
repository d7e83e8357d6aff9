// Package draw renders the board to a terminal with ANSI escape sequences.
package draw

import (
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// MaxCellScale caps how many pixels a board cell spans per side.
const MaxCellScale = 3

// Terminal rows reserved around the board: the HUD line above the top
// border and the hint line below the bottom border.
const reservedRows = 4

// Layout places a board inside a terminal. A pixel is one column wide and
// half a row tall, so a Scale x Scale pixel block is roughly square.
type Layout struct {
	Scale      int // Pixels per cell side; 0 when the board does not fit
	Width      int // Canvas width in terminal columns
	Height     int // Canvas height in terminal rows
	OffsetCol  int // 0-based column of the canvas' left edge
	OffsetRow  int // 0-based row of the canvas' top edge
	TermWidth  int
	TermHeight int
}

// NewLayout picks the largest scale at which g fits a termWidth x
// termHeight terminal with its border and text lines, and centers it.
func NewLayout(termWidth, termHeight int, g grid.Grid) Layout {
	l := Layout{TermWidth: termWidth, TermHeight: termHeight}
	for k := MaxCellScale; k >= 1; k-- {
		w := g.Width * k
		h := (g.Height*k + 1) / 2
		if w+2 > termWidth || h+reservedRows > termHeight {
			continue
		}
		l.Scale = k
		l.Width = w
		l.Height = h
		l.OffsetCol = (termWidth - w) / 2
		l.OffsetRow = max((termHeight-h)/2, 2)
		return l
	}
	return l
}

// Fits reports whether the board can be drawn at all.
func (l Layout) Fits() bool {
	return l.Scale > 0
}

// CellAt converts a 0-based terminal position to fractional board
// coordinates, for pointer gestures. Positions off the board report false.
func (l Layout) CellAt(col, row int) (x, y float64, ok bool) {
	if !l.Fits() {
		return 0, 0, false
	}
	if col < l.OffsetCol || col >= l.OffsetCol+l.Width || row < l.OffsetRow || row >= l.OffsetRow+l.Height {
		return 0, 0, false
	}
	x = (float64(col-l.OffsetCol) + 0.5) / float64(l.Scale)
	y = (float64(row-l.OffsetRow)*2 + 1) / float64(l.Scale)
	return x, y, true
}

// DrawBoard paints snap onto c. c must be sized to l.
func DrawBoard(c *Canvas, l Layout, snap game.Snapshot) {
	c.Clear()
	if !l.Fits() {
		return
	}
	k := l.Scale

	// Faint checkerboard in place of grid lines.
	if k > 1 {
		for y := 0; y < snap.Grid.Height; y++ {
			for x := y % 2; x < snap.Grid.Width; x += 2 {
				c.FillRect(x*k, y*k, k, k, ColorGrid)
			}
		}
	}

	fillCell(c, snap.Food, k, ColorFood)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		color := ColorSnakeBody
		if i == 0 {
			color = ColorSnakeHead
		}
		fillCell(c, snap.Snake[i], k, color)
	}
}

func fillCell(c *Canvas, cell grid.Cell, k int, color Color) {
	c.FillRect(cell.X*k, cell.Y*k, k, k, color)
}
