package config

import (
	"strconv"

	"github.com/tomz197/snake/internal/game"
)

// GameSettings returns the default ruleset with SNAKE_* environment
// overrides applied. The result is not validated; game.New does that.
func GameSettings() game.Settings {
	s := game.DefaultSettings()
	s.CanvasWidth = GetEnvInt("SNAKE_CANVAS_WIDTH", s.CanvasWidth)
	s.CanvasHeight = GetEnvInt("SNAKE_CANVAS_HEIGHT", s.CanvasHeight)
	s.CellSize = GetEnvInt("SNAKE_CELL_SIZE", s.CellSize)
	s.InitialTick = GetEnvDuration("SNAKE_INITIAL_TICK", s.InitialTick)
	s.MinTick = GetEnvDuration("SNAKE_MIN_TICK", s.MinTick)
	s.SpeedIncrement = GetEnvDuration("SNAKE_SPEED_STEP", s.SpeedIncrement)
	if seed, err := strconv.ParseUint(GetEnv("SNAKE_SEED", "0"), 10, 64); err == nil {
		s.Seed = seed
	}
	return s
}
