// Package tui is the local terminal frontend built on tcell. It drives one
// game with keys, mouse drags and focus events and draws it with the same
// half-block pixels as the ANSI renderer.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop/config"
)

// Options configures an App.
type Options struct {
	Clock  game.TimeProvider // Defaults to the wall clock
	Logger *zerolog.Logger   // Defaults to a no-op logger
}

// App runs a game on a tcell screen.
type App struct {
	screen  tcell.Screen
	game    *game.Game
	clock   game.TimeProvider
	canvas  *draw.Canvas
	layout  draw.Layout
	swipe   *input.Swipe
	log     zerolog.Logger
	running bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New wraps an initialized screen. The caller owns the screen and calls
// Fini after Run returns.
func New(screen tcell.Screen, g *game.Game, opts Options) *App {
	clock := opts.Clock
	if clock == nil {
		clock = game.NewMonotonicTimeProvider()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	a := &App{
		screen:  screen,
		game:    g,
		clock:   clock,
		canvas:  draw.NewCanvas(0, 0),
		swipe:   input.NewSwipe(),
		log:     logger,
		running: true,
		stopCh:  make(chan struct{}),
	}
	a.resize()
	return a
}

// Stop ends Run. Safe to call more than once and from other goroutines.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}

// Run polls events and draws frames until the player quits, ctx is
// cancelled or Stop is called.
func (a *App) Run(ctx context.Context) error {
	a.screen.HideCursor()
	a.screen.EnableMouse(tcell.MouseButtonEvents)
	a.screen.EnableFocus()
	defer a.screen.DisableMouse()
	defer a.screen.DisableFocus()
	defer a.Stop()

	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-a.stopCh:
				return
			}
		}
	}()

	for a.running {
		select {
		case <-ctx.Done():
			return nil
		case <-a.stopCh:
			return nil
		case ev := <-events:
			a.handleEvent(ev)
		case <-ticker.C:
			now := a.clock.Now()
			a.game.Tick(now)
			a.draw(now)
		}
	}
	a.log.Debug().Int("score", a.game.Snapshot().Score).Msg("player quit")
	return nil
}

// handleEvent applies one tcell event to the game.
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if input.Dispatch(a.game, keyFor(ev)) {
			a.running = false
		}
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			a.game.VisibilityLost()
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}
}

// handleMouse turns left-button press/release pairs into gestures.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y, ok := a.layout.CellAt(ev.Position())
	if !ok {
		a.swipe.Cancel()
		return
	}
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !a.swipe.Pressed():
		a.swipe.Press(x, y)
	case !down && a.swipe.Pressed():
		g, d := a.swipe.Release(x, y)
		input.Apply(a.game, g, d)
	}
}

// resize recomputes the layout from the screen size. A board that no
// longer fits pauses the game.
func (a *App) resize() {
	w, h := a.screen.Size()
	a.layout = draw.NewLayout(w, h, a.game.Grid())
	a.canvas.Resize(a.layout.Width, a.layout.Height)
	if !a.layout.Fits() {
		a.game.VisibilityLost()
	}
}

// keyFor maps a tcell key event to a game key.
func keyFor(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		return input.KeyForRune(ev.Rune())
	}
	return input.KeyNone
}
