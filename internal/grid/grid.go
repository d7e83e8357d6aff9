// Package grid is the discrete board geometry: cells, directions and bounds.
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when the derived board has no usable cells.
var ErrInvalidGrid = errors.New("grid: invalid dimensions")

// Cell is a board coordinate. X grows right, Y grows down.
type Cell struct {
	X, Y int
}

// Add returns the cell one step from c in direction d.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit step along exactly one axis.
// The zero value is not a valid direction.
type Direction struct {
	DX, DY int
}

var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// Valid reports whether d is one of Up, Down, Left or Right.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("invalid(%d,%d)", d.DX, d.DY)
}

// Grid is a fixed-size board. It holds no state beyond its dimensions.
type Grid struct {
	Width  int
	Height int
}

// New returns a grid of the given size or ErrInvalidGrid when either side is < 1.
func New(width, height int) (Grid, error) {
	if width < 1 || height < 1 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, width, height)
	}
	return Grid{Width: width, Height: height}, nil
}

// FromCanvas derives a grid from a pixel area split into square cells,
// flooring partial cells.
func FromCanvas(canvasWidth, canvasHeight, cellSize int) (Grid, error) {
	if cellSize < 1 {
		return Grid{}, fmt.Errorf("%w: cell size %d", ErrInvalidGrid, cellSize)
	}
	return New(canvasWidth/cellSize, canvasHeight/cellSize)
}

// InBounds reports whether c lies on the board.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Center returns the cell at the floored midpoint of the board.
func (g Grid) Center() Cell {
	return Cell{X: g.Width / 2, Y: g.Height / 2}
}

// Size returns the number of cells on the board.
func (g Grid) Size() int {
	return g.Width * g.Height
}
