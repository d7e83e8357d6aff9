package client

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
)

func TestDrawStartScreen(t *testing.T) {
	tc := newTestClient(t)
	if err := tc.drawFrame(tc.clock.Now()); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	out := tc.out.String()
	for _, want := range []string{
		"\033[H\033[2J",
		"Press SPACE to Start",
		"Score 0",
		"Players 2",
		"alice 30",
		"┌",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("start frame missing %q", want)
		}
	}
}

func TestDrawOnlyClearsOnScreenChange(t *testing.T) {
	tc := newTestClient(t)
	tc.Game().Start()
	if err := tc.drawFrame(tc.clock.Now()); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	tc.out.Reset()

	if err := tc.drawFrame(tc.clock.Now()); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if strings.Contains(tc.out.String(), "\033[2J") {
		t.Error("unchanged screen should not clear the terminal")
	}
	if strings.Contains(tc.out.String(), "┌") {
		t.Error("border should only be redrawn after a clear")
	}

	tc.Game().Pause()
	tc.out.Reset()
	if err := tc.drawFrame(tc.clock.Now()); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	out := tc.out.String()
	if !strings.Contains(out, "\033[2J") || !strings.Contains(out, "PAUSED") {
		t.Error("pausing should clear and draw the paused overlay")
	}
}

func TestDrawGameOver(t *testing.T) {
	tc := newTestClient(t)
	tc.Game().Start()
	tc.Game().Submit(grid.Up)
	for i := 0; i < 50 && tc.Game().Phase() == game.PhasePlaying; i++ {
		tc.tick()
	}
	if tc.Game().Phase() != game.PhaseGameOver {
		t.Fatalf("phase = %v, want game over after hitting the wall", tc.Game().Phase())
	}

	if err := tc.drawFrame(tc.clock.Now().Truncate(1200 * time.Millisecond)); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	out := tc.out.String()
	for _, want := range []string{"Score: 0", "Press ENTER to Restart", `/ __| /_\`} {
		if !strings.Contains(out, want) {
			t.Errorf("game over frame missing %q", want)
		}
	}
	if strings.Contains(out, "NEW HIGH SCORE") {
		t.Error("a zero score is not a new high score")
	}
}

func TestTerminalTooSmall(t *testing.T) {
	tc := newTestClient(t)
	tc.Game().Start()

	tc.term.width, tc.term.height = 20, 10
	tc.updateScreen()
	if tc.layout.Fits() {
		t.Fatal("board should not fit a 20x10 terminal")
	}
	if tc.Game().Phase() != game.PhasePaused {
		t.Errorf("phase = %v, want paused while the board is hidden", tc.Game().Phase())
	}

	if err := tc.drawFrame(tc.clock.Now()); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(tc.out.String(), "Terminal too small") {
		t.Error("too-small message not drawn")
	}

	tc.term.width, tc.term.height = 80, 24
	tc.updateScreen()
	if !tc.layout.Fits() {
		t.Error("board should fit again after growing the terminal")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
		{"né", 3, "né "},
	}
	for _, tt := range tests {
		if got := fit(tt.s, tt.n); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestRunEndsOnQuit(t *testing.T) {
	tc := newTestClientWithReader(t, bufio.NewReader(strings.NewReader("q")))

	done := make(chan error, 1)
	go func() { done <- tc.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}

	if len(tc.server.unregistered) != 1 || tc.server.unregistered[0] != tc.server.handle.ID {
		t.Errorf("unregistered = %v, want [%d]", tc.server.unregistered, tc.server.handle.ID)
	}
	if !strings.HasSuffix(tc.out.String(), "\033[?25h") {
		t.Error("cursor should be restored on exit")
	}
}

func TestRunStops(t *testing.T) {
	t.Run("context", func(t *testing.T) {
		tc := newTestClient(t)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- tc.Run(ctx) }()
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})

	t.Run("stop", func(t *testing.T) {
		tc := newTestClient(t)
		done := make(chan error, 1)
		go func() { done <- tc.Run(context.Background()) }()
		tc.Stop()
		tc.Stop()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after Stop")
		}
	})
}
