package config

import (
	"testing"
	"time"

	"github.com/tomz197/snake/internal/game"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SNAKE_TEST_STR", "value")
	if got := GetEnv("SNAKE_TEST_STR", "fallback"); got != "value" {
		t.Errorf("expected value, got %q", got)
	}
	if got := GetEnv("SNAKE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}

	// Set but empty is still set.
	t.Setenv("SNAKE_TEST_EMPTY", "")
	if got := GetEnv("SNAKE_TEST_EMPTY", "fallback"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestGetEnvTyped(t *testing.T) {
	t.Setenv("SNAKE_TEST_INT", "42")
	t.Setenv("SNAKE_TEST_BAD_INT", "forty")
	t.Setenv("SNAKE_TEST_DUR", "75ms")
	t.Setenv("SNAKE_TEST_BAD_DUR", "soon")

	if got := GetEnvInt("SNAKE_TEST_INT", 1); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := GetEnvInt("SNAKE_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("expected fallback 1, got %d", got)
	}
	if got := GetEnvDuration("SNAKE_TEST_DUR", time.Second); got != 75*time.Millisecond {
		t.Errorf("expected 75ms, got %v", got)
	}
	if got := GetEnvDuration("SNAKE_TEST_BAD_DUR", time.Second); got != time.Second {
		t.Errorf("expected fallback 1s, got %v", got)
	}
}

func TestGameSettings(t *testing.T) {
	t.Setenv("SNAKE_CANVAS_WIDTH", "200")
	t.Setenv("SNAKE_CANVAS_HEIGHT", "100")
	t.Setenv("SNAKE_CELL_SIZE", "10")
	t.Setenv("SNAKE_INITIAL_TICK", "120ms")
	t.Setenv("SNAKE_SEED", "7")

	s := GameSettings()
	g, err := s.Grid()
	if err != nil {
		t.Fatalf("unexpected grid error: %v", err)
	}
	if g.Width != 20 || g.Height != 10 {
		t.Errorf("expected 20x10, got %dx%d", g.Width, g.Height)
	}
	if s.InitialTick != 120*time.Millisecond || s.Seed != 7 {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.MinTick != game.MinTick || s.PointsPerFood != game.PointsPerFood {
		t.Errorf("defaults lost: %+v", s)
	}
}

func TestGameSettingsRejectsDegenerateBoard(t *testing.T) {
	t.Setenv("SNAKE_CELL_SIZE", "1000")
	if err := GameSettings().Validate(); err == nil {
		t.Error("expected a board smaller than one cell to be rejected")
	}
}
