package input

import (
	"testing"
	"time"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	s := game.DefaultSettings()
	s.Seed = 1
	g, err := game.New(s, game.Options{Clock: game.NewMockTimeProvider(time.Unix(0, 0))})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

// toGameOver drives g into a wall.
func toGameOver(t *testing.T, g *game.Game) {
	t.Helper()
	now := time.Unix(0, 0)
	for i := 0; i < 100 && g.Phase() == game.PhasePlaying; i++ {
		now = now.Add(time.Second)
		g.Tick(now)
	}
	if g.Phase() != game.PhaseGameOver {
		t.Fatalf("expected game over, got %v", g.Phase())
	}
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testing.T, *game.Game)
		key   Key
		want  game.Phase
	}{
		{"space starts", nil, KeySpace, game.PhasePlaying},
		{"enter starts", nil, KeyEnter, game.PhasePlaying},
		{"direction starts", nil, KeyUp, game.PhasePlaying},
		{"escape ignored on title", nil, KeyEscape, game.PhaseStart},
		{"space pauses", start, KeySpace, game.PhasePaused},
		{"escape pauses", start, KeyEscape, game.PhasePaused},
		{"p pauses", start, KeyPause, game.PhasePaused},
		{"enter ignored while playing", start, KeyEnter, game.PhasePlaying},
		{"space resumes", pause, KeySpace, game.PhasePlaying},
		{"escape resumes", pause, KeyEscape, game.PhasePlaying},
		{"enter restarts", over, KeyEnter, game.PhasePlaying},
		{"space ignored after game over", over, KeySpace, game.PhaseGameOver},
		{"direction ignored after game over", over, KeyLeft, game.PhaseGameOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t)
			if tt.setup != nil {
				tt.setup(t, g)
			}
			if quit := Dispatch(g, tt.key); quit {
				t.Errorf("unexpected quit")
			}
			if g.Phase() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, g.Phase())
			}
		})
	}
}

func start(t *testing.T, g *game.Game) {
	if !g.Start() {
		t.Fatal("start failed")
	}
}

func pause(t *testing.T, g *game.Game) {
	start(t, g)
	g.Pause()
}

func over(t *testing.T, g *game.Game) {
	start(t, g)
	toGameOver(t, g)
}

func TestDispatchQuit(t *testing.T) {
	g := newGame(t)
	if !Dispatch(g, KeyQuit) {
		t.Error("expected quit")
	}
	if g.Phase() != game.PhaseStart {
		t.Errorf("quit must not change the phase, got %v", g.Phase())
	}
}

func TestDispatchSteers(t *testing.T) {
	g := newGame(t)
	start(t, g)
	Dispatch(g, KeyDown)
	g.Tick(time.Unix(0, 0).Add(time.Second))
	if d := g.Snapshot().Direction; d != grid.Down {
		t.Errorf("expected down, got %v", d)
	}
}

func TestTap(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testing.T, *game.Game)
		want  game.Phase
	}{
		{"title", nil, game.PhasePlaying},
		{"playing", start, game.PhasePlaying},
		{"paused", pause, game.PhasePlaying},
		{"game over", over, game.PhasePlaying},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t)
			if tt.setup != nil {
				tt.setup(t, g)
			}
			Tap(g)
			if g.Phase() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, g.Phase())
			}
		})
	}
}
