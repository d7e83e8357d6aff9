// Package client runs one player's snake game on a terminal connection:
// ANSI input in, diff-rendered frames out.
package client

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop/config"
	"github.com/tomz197/snake/internal/loop/server"
)

// Client handles the game, rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	game         *game.Game
	state        *ClientState
	layout       draw.Layout
	canvas       *draw.Canvas
	output       *draw.Frame // Queues each frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	swipe        *input.Swipe
	clock        game.TimeProvider
	lastInput    time.Time
	username     string
	termSizeFunc draw.SizeFunc
	idleLimit    bool
	log          zerolog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.SizeFunc
	Username     string
	Settings     game.Settings
	HighScores   game.HighScoreStore // Optional persistent high score
	Listeners    []game.Listener     // Extra game event listeners (sound, leaderboard)
	Clock        game.TimeProvider   // Defaults to the wall clock
	Logger       *zerolog.Logger     // Defaults to a no-op logger

	// DisconnectIdle warns and then disconnects players who stop pressing
	// keys (shared hosts).
	DisconnectIdle bool
}

// NewClient creates a new client connected to the given server. The reader
// is consumed on a background goroutine until it fails.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}
	clock := opts.Clock
	if clock == nil {
		clock = game.NewMonotonicTimeProvider()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	g, err := game.New(opts.Settings, game.Options{
		Clock:      clock,
		HighScores: opts.HighScores,
		Listeners:  opts.Listeners,
		Logger:     &logger,
	})
	if err != nil {
		return nil, err
	}

	c := &Client{
		server:       gs,
		game:         g,
		state:        NewClientState(),
		canvas:       draw.NewCanvas(0, 0),
		output:       draw.NewFrame(w),
		writer:       w,
		inputStream:  input.StartStream(r),
		swipe:        input.NewSwipe(),
		clock:        clock,
		lastInput:    clock.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		idleLimit:    opts.DisconnectIdle,
		log:          logger,
		stopCh:       make(chan struct{}),
	}
	c.updateScreen()
	c.handle = gs.RegisterClient(opts.Username)
	return c, nil
}

// Game returns the game driven by this client.
func (c *Client) Game() *game.Game {
	return c.game
}

// Stop ends the client loop. Safe to call more than once and from other
// goroutines.
func (c *Client) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, ctx is cancelled or Stop is called.
func (c *Client) Run(ctx context.Context) error {
	if err := draw.Setup(c.writer); err != nil {
		return err
	}
	defer func() { _ = draw.Teardown(c.writer) }()
	defer c.server.UnregisterClient(c.handle.ID)

	c.state.lastFrame = c.clock.Now()

	for c.state.Running {
		frameStart := c.clock.Now()
		if err := c.frame(frameStart); err != nil {
			return err
		}

		// Frame timing
		wait := config.ClientTargetFrameTime - c.clock.Now().Sub(frameStart)
		if wait <= 0 {
			wait = time.Millisecond
		}
		select {
		case <-ctx.Done():
			return nil
		case <-c.stopCh:
			return nil
		case <-time.After(wait):
		}
	}
	return nil
}

// frame runs one Input -> Update -> Draw cycle.
func (c *Client) frame(now time.Time) error {
	c.state.delta = now.Sub(c.state.lastFrame)
	c.state.lastFrame = now

	c.handleInput(input.ReadInput(c.inputStream), now)
	c.processServerEvents()
	c.updateScreen()
	c.update(now)
	return c.drawFrame(now)
}

// handleInput applies one frame of decoded input to the game.
func (c *Client) handleInput(in input.Input, now time.Time) {
	c.state.Input = in

	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if c.idleLimit {
		if idle := now.Sub(c.lastInput).Seconds(); idle > config.InactivityDisconnectUser {
			c.log.Info().Str("user", c.username).Msg("disconnecting inactive client")
			c.state.Running = false
		} else if idle > config.InactivityWarnUser {
			c.state.isInactive = true
		}
	}

	if in.Closed {
		c.state.Running = false
	}

	if c.state.shutdown {
		for _, k := range in.Keys {
			if k == input.KeyQuit {
				c.state.Running = false
			}
		}
		return
	}

	for _, k := range in.Keys {
		if input.Dispatch(c.game, k) {
			c.state.Running = false
			return
		}
	}

	if in.FocusLost {
		c.game.VisibilityLost()
	}

	for _, ev := range in.Mouse {
		x, y, ok := c.layout.CellAt(ev.X, ev.Y)
		if !ok {
			c.swipe.Cancel()
			continue
		}
		if ev.Press {
			c.swipe.Press(x, y)
			continue
		}
		g, d := c.swipe.Release(x, y)
		input.Apply(c.game, g, d)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown && !c.state.shutdown {
				c.state.shutdown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
				c.game.Pause()
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. When the layout moves, the terminal
// is cleared to remove residue outside the new board area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	l := draw.NewLayout(termWidth, termHeight, c.game.Grid())
	if l == c.layout {
		return
	}
	c.layout = l
	c.canvas.Resize(l.Width, l.Height)
	c.canvas.SetOffset(l.OffsetCol, l.OffsetRow)
	c.output.Place(l)
	c.output.Clear()
	c.canvas.ForceRedraw()
	c.state.borderDirty = true

	// A board the player cannot see must not keep moving.
	if !l.Fits() {
		c.game.VisibilityLost()
	}
}

// update advances the game and reports progress to the server.
func (c *Client) update(now time.Time) {
	if c.state.shutdown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
		return
	}

	c.game.Tick(now)

	snap := c.game.Snapshot()
	if snap.Score > c.state.reportedScore {
		c.state.reportedScore = snap.Score
		c.server.ReportScore(c.handle.ID, snap.Score)
	}
	if snap.Phase != c.state.lastPhase {
		c.log.Debug().
			Str("user", c.username).
			Stringer("from", c.state.lastPhase).
			Stringer("to", snap.Phase).
			Int("score", snap.Score).
			Msg("phase changed")
		c.state.lastPhase = snap.Phase
	}
}
