package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/input"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *game.MockTimeProvider) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	clock := game.NewMockTimeProvider(epoch)
	settings := game.DefaultSettings()
	settings.Seed = 3
	g, err := game.New(settings, game.Options{Clock: clock})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return New(screen, g, Options{Clock: clock}), screen, clock
}

// screenText returns the visible characters of every row.
func screenText(screen tcell.SimulationScreen) string {
	cells, w, h := screen.GetContents()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) > 0 {
				sb.WriteRune(c.Runes[0])
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want input.Key
	}{
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.KeyUp},
		{"down arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), input.KeyDown},
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.KeyLeft},
		{"right arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input.KeyRight},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.KeyEnter},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.KeyEscape},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), input.KeyQuit},
		{"w", runeKey('w'), input.KeyUp},
		{"A", runeKey('A'), input.KeyLeft},
		{"j", runeKey('j'), input.KeyDown},
		{"space", runeKey(' '), input.KeySpace},
		{"p", runeKey('p'), input.KeyPause},
		{"q", runeKey('q'), input.KeyQuit},
		{"unbound", runeKey('x'), input.KeyNone},
		{"non-ascii", runeKey('é'), input.KeyNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyFor(tt.ev); got != tt.want {
				t.Errorf("keyFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeysDriveGame(t *testing.T) {
	app, _, clock := newTestApp(t)

	app.handleEvent(runeKey(' '))
	if app.game.Phase() != game.PhasePlaying {
		t.Fatalf("phase = %v, want playing", app.game.Phase())
	}

	app.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	app.game.Tick(clock.Advance(game.InitialTick))
	if got := app.game.Snapshot().Direction; got != grid.Down {
		t.Errorf("direction = %v, want down", got)
	}

	app.handleEvent(runeKey('p'))
	if app.game.Phase() != game.PhasePaused {
		t.Errorf("phase = %v, want paused", app.game.Phase())
	}

	app.handleEvent(runeKey('q'))
	if app.running {
		t.Error("q should end the app")
	}
}

func TestFocusLossPauses(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.game.Start()

	app.handleEvent(tcell.NewEventFocus(true))
	if app.game.Phase() != game.PhasePlaying {
		t.Fatalf("focus gain should not pause")
	}
	app.handleEvent(tcell.NewEventFocus(false))
	if app.game.Phase() != game.PhasePaused {
		t.Errorf("phase = %v, want paused after focus loss", app.game.Phase())
	}
}

func TestMouseGestures(t *testing.T) {
	app, _, clock := newTestApp(t)
	l := app.layout
	at := func(x, y int) (int, int) {
		return l.OffsetCol + x*l.Scale, l.OffsetRow + y*l.Scale/2
	}

	// A tap starts the game.
	x, y := at(4, 4)
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	if app.game.Phase() != game.PhasePlaying {
		t.Fatalf("phase = %v, want playing after a tap", app.game.Phase())
	}

	// Drag events with the button held keep the original origin.
	ux, uy := at(4, 1)
	mx, my := at(4, 3)
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(mx, my, tcell.Button1, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(ux, uy, tcell.ButtonNone, tcell.ModNone))
	app.game.Tick(clock.Advance(game.InitialTick))
	if got := app.game.Snapshot().Direction; got != grid.Up {
		t.Errorf("direction = %v, want up after an upward drag", got)
	}
}

func TestMouseReleaseOffBoard(t *testing.T) {
	app, _, _ := newTestApp(t)
	l := app.layout
	x, y := l.OffsetCol+2, l.OffsetRow+2

	app.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(l.OffsetCol+l.Width+1, y, tcell.ButtonNone, tcell.ModNone))
	if app.swipe.Pressed() {
		t.Fatal("expected the gesture to be dropped")
	}
	app.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	if app.game.Phase() != game.PhaseStart {
		t.Errorf("phase = %v, want start", app.game.Phase())
	}
}

func TestDrawStartScreen(t *testing.T) {
	app, screen, clock := newTestApp(t)
	app.draw(clock.Now())

	text := screenText(screen)
	for _, want := range []string{"Press SPACE to Start", "Score 0", "┌", "┘"} {
		if !strings.Contains(text, want) {
			t.Errorf("start screen missing %q", want)
		}
	}
}

func TestDrawBoardColors(t *testing.T) {
	app, screen, clock := newTestApp(t)
	app.game.Start()
	app.draw(clock.Now())

	snap := app.game.Snapshot()
	l := app.layout
	head := snap.Snake[0]
	x := l.OffsetCol + head.X*l.Scale
	y := l.OffsetRow + head.Y*l.Scale/2

	cells, w, _ := screen.GetContents()
	cell := cells[y*w+x]
	if len(cell.Runes) == 0 || cell.Runes[0] != draw.BlockFull {
		t.Fatalf("head cell = %q, want full block", cell.Runes)
	}
	fg, _, _ := cell.Style.Decompose()
	if want := tcellColor(draw.ColorSnakeHead); fg != want {
		t.Errorf("head color = %v, want %v", fg, want)
	}
}

func TestDrawGameOver(t *testing.T) {
	app, screen, clock := newTestApp(t)
	app.game.Start()
	app.game.Submit(grid.Up)
	for i := 0; i < 50 && app.game.Phase() == game.PhasePlaying; i++ {
		app.game.Tick(clock.Advance(game.InitialTick))
	}
	app.draw(clock.Now().Truncate(1200 * time.Millisecond))

	text := screenText(screen)
	for _, want := range []string{"Score: 0", "Press ENTER to Restart"} {
		if !strings.Contains(text, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestResizeTooSmallPauses(t *testing.T) {
	app, screen, clock := newTestApp(t)
	app.game.Start()

	screen.SetSize(20, 10)
	app.handleEvent(tcell.NewEventResize(20, 10))
	if app.layout.Fits() {
		t.Fatal("board should not fit 20x10")
	}
	if app.game.Phase() != game.PhasePaused {
		t.Errorf("phase = %v, want paused", app.game.Phase())
	}

	app.draw(clock.Now())
	if !strings.Contains(screenText(screen), "Terminal too small") {
		t.Error("too-small message not drawn")
	}
}

func TestRunEndsOnQuit(t *testing.T) {
	app, screen, _ := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	app, _, _ := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	app.Stop()
	app.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
