package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/snake/internal/grid"
)

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Board
const (
	CanvasWidth  = 480 // Logical pixel width of the playing field
	CanvasHeight = 360 // Logical pixel height of the playing field
	CellSize     = 20  // Pixels per board cell (480x360 -> 24x18)
)

// Scoring
const (
	PointsPerFood = 10
	LevelUpPoints = 50
)

// Speed
const (
	InitialTick    = 150 * time.Millisecond
	SpeedIncrement = 5 * time.Millisecond // Interval reduction per level
	MinTick        = 50 * time.Millisecond
)

// Food
const (
	FoodPlacementAttempts = 100 // Samples before an occupied cell is accepted
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("game: invalid settings")

// Settings holds the tunables of one game instance.
type Settings struct {
	CanvasWidth    int
	CanvasHeight   int
	CellSize       int
	PointsPerFood  int
	LevelUpPoints  int
	InitialTick    time.Duration
	SpeedIncrement time.Duration
	MinTick        time.Duration
	FoodAttempts   int
	Seed           uint64 // 0 seeds from the current time
}

// DefaultSettings returns the standard ruleset.
func DefaultSettings() Settings {
	return Settings{
		CanvasWidth:    CanvasWidth,
		CanvasHeight:   CanvasHeight,
		CellSize:       CellSize,
		PointsPerFood:  PointsPerFood,
		LevelUpPoints:  LevelUpPoints,
		InitialTick:    InitialTick,
		SpeedIncrement: SpeedIncrement,
		MinTick:        MinTick,
		FoodAttempts:   FoodPlacementAttempts,
	}
}

// Grid derives the board from the canvas area.
func (s Settings) Grid() (grid.Grid, error) {
	return grid.FromCanvas(s.CanvasWidth, s.CanvasHeight, s.CellSize)
}

// Validate rejects settings the simulation cannot run with.
func (s Settings) Validate() error {
	if _, err := s.Grid(); err != nil {
		return err
	}
	switch {
	case s.PointsPerFood < 1:
		return fmt.Errorf("%w: points per food %d", ErrInvalidSettings, s.PointsPerFood)
	case s.LevelUpPoints < 1:
		return fmt.Errorf("%w: level-up points %d", ErrInvalidSettings, s.LevelUpPoints)
	case s.MinTick <= 0:
		return fmt.Errorf("%w: min tick %v", ErrInvalidSettings, s.MinTick)
	case s.InitialTick < s.MinTick:
		return fmt.Errorf("%w: initial tick %v below min tick %v", ErrInvalidSettings, s.InitialTick, s.MinTick)
	case s.SpeedIncrement < 0:
		return fmt.Errorf("%w: speed increment %v", ErrInvalidSettings, s.SpeedIncrement)
	case s.FoodAttempts < 1:
		return fmt.Errorf("%w: food attempts %d", ErrInvalidSettings, s.FoodAttempts)
	}
	return nil
}
