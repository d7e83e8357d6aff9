package input

import (
	"math"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
)

// MinSwipeDistance is how far, in board cells, a drag must travel along its
// dominant axis to count as a swipe.
const MinSwipeDistance = 1.5

// Resolve turns a drag displacement into a direction. Drags shorter than
// minDistance on both axes are jitter and resolve to nothing; ties go to
// the vertical axis.
func Resolve(dx, dy, minDistance float64) (grid.Direction, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if max(ax, ay) < minDistance {
		return grid.Direction{}, false
	}
	if ax > ay {
		if dx > 0 {
			return grid.Right, true
		}
		return grid.Left, true
	}
	if dy > 0 {
		return grid.Down, true
	}
	return grid.Up, true
}

// Gesture classifies a completed press/release pair.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureTap
	GestureSwipe
)

// Swipe tracks one pointer from press to release. Coordinates are in board
// cells.
type Swipe struct {
	MinDistance float64

	x, y float64
	down bool
}

// NewSwipe returns a tracker using MinSwipeDistance.
func NewSwipe() *Swipe {
	return &Swipe{MinDistance: MinSwipeDistance}
}

// Press records where the pointer went down.
func (s *Swipe) Press(x, y float64) {
	s.x, s.y = x, y
	s.down = true
}

// Release ends the gesture. A release without a press is ignored.
func (s *Swipe) Release(x, y float64) (Gesture, grid.Direction) {
	if !s.down {
		return GestureNone, grid.Direction{}
	}
	s.down = false
	if d, ok := Resolve(x-s.x, y-s.y, s.MinDistance); ok {
		return GestureSwipe, d
	}
	return GestureTap, grid.Direction{}
}

// Apply routes a gesture to c: swipes steer, taps act like clicking the
// overlay.
func Apply(c Controller, g Gesture, d grid.Direction) {
	switch g {
	case GestureSwipe:
		if c.Phase() == game.PhasePlaying {
			c.Submit(d)
		}
	case GestureTap:
		Tap(c)
	}
}

// Pressed reports whether a gesture is in progress.
func (s *Swipe) Pressed() bool {
	return s.down
}

// Cancel drops a gesture in progress.
func (s *Swipe) Cancel() {
	s.down = false
}
