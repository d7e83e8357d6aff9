package game

import (
	"slices"
	"time"

	"github.com/tomz197/snake/internal/grid"
)

// Phase is the coarse game state.
type Phase int

const (
	PhaseStart    Phase = iota // Title screen, nothing simulated yet
	PhasePlaying               // Ticks advance the snake
	PhasePaused                // Ticking halted, state frozen
	PhaseGameOver              // Collision happened, waiting for restart
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// State is the authoritative entity state of one game.
// The snake head is Snake[0].
type State struct {
	Snake     []grid.Cell
	Direction grid.Direction // Committed by the most recent tick
	Pending   grid.Direction // Applied on the next tick
	Food      grid.Cell
	Score     int
	Level     int
	Interval  time.Duration
	Phase     Phase
}

// Head returns the first snake cell.
func (s *State) Head() grid.Cell {
	return s.Snake[0]
}

// Occupies reports whether any snake cell equals c.
func (s *State) Occupies(c grid.Cell) bool {
	return occupied(s.Snake, c)
}

func occupied(snake []grid.Cell, c grid.Cell) bool {
	return slices.Contains(snake, c)
}

// Snapshot is an immutable copy of the game for rendering and UI.
type Snapshot struct {
	Grid         grid.Grid
	Snake        []grid.Cell
	Food         grid.Cell
	Direction    grid.Direction
	Score        int
	HighScore    int
	NewHighScore bool // Set on the game over that beat the previous high score
	Level        int
	Interval     time.Duration
	Speed        float64 // InitialTick / Interval, 1.0 at level 1
	Phase        Phase
}

// Length returns the snake length.
func (s Snapshot) Length() int {
	return len(s.Snake)
}
