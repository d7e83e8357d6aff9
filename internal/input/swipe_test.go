package input

import (
	"testing"
	"time"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   grid.Direction
		ok     bool
	}{
		{"right", 3, 1, grid.Right, true},
		{"left", -2, 0.5, grid.Left, true},
		{"down", 0.5, 4, grid.Down, true},
		{"up", -1, -1.5, grid.Up, true},
		{"tie is vertical", 2, -2, grid.Up, true},
		{"at threshold", 1.5, 0, grid.Right, true},
		{"jitter", 1, -1.4, grid.Direction{}, false},
		{"none", 0, 0, grid.Direction{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.dx, tt.dy, MinSwipeDistance)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Resolve(%v, %v) = %v, %v; want %v, %v", tt.dx, tt.dy, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSwipeGestures(t *testing.T) {
	s := NewSwipe()

	if g, _ := s.Release(3, 3); g != GestureNone {
		t.Errorf("release without press: expected none, got %v", g)
	}

	s.Press(5, 5)
	if g, d := s.Release(5, 9); g != GestureSwipe || d != grid.Down {
		t.Errorf("expected swipe down, got %v %v", g, d)
	}

	s.Press(5, 5)
	if g, _ := s.Release(5.5, 5); g != GestureTap {
		t.Errorf("expected tap, got %v", g)
	}

	s.Press(5, 5)
	s.Cancel()
	if s.Pressed() {
		t.Error("expected no gesture after cancel")
	}
	if g, _ := s.Release(5, 9); g != GestureNone {
		t.Errorf("release after cancel: expected none, got %v", g)
	}
}

func TestApplyGesture(t *testing.T) {
	g := newGame(t)

	// A swipe on the title screen is not input.
	Apply(g, GestureSwipe, grid.Up)
	if g.Phase() != game.PhaseStart {
		t.Fatalf("expected title screen, got %v", g.Phase())
	}

	Apply(g, GestureTap, grid.Direction{})
	if g.Phase() != game.PhasePlaying {
		t.Fatalf("expected tap to start, got %v", g.Phase())
	}

	Apply(g, GestureSwipe, grid.Up)
	g.Tick(time.Unix(0, 0).Add(time.Second))
	if d := g.Snapshot().Direction; d != grid.Up {
		t.Errorf("expected the swipe to steer up, got %v", d)
	}
}
