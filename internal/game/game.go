// Package game implements the snake simulation and its phase state machine.
//
// A Game is driven by a single loop: input is fed through the action methods
// (Submit, Start, Pause, ...) and time through Tick. A Game is not safe for
// concurrent use; hosts serialize access on their frame loop.
package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/snake/internal/grid"
)

// storeTimeout bounds high-score persistence calls made from the game loop.
const storeTimeout = 2 * time.Second

// Options configures the collaborators of a Game.
type Options struct {
	Clock      TimeProvider    // Defaults to the wall clock
	HighScores HighScoreStore  // Optional; high score starts at 0 without one
	Listeners  []Listener      // Notified of food, level and game over events
	Logger     *zerolog.Logger // Defaults to a no-op logger
}

// Game owns one snake game: its entity state, food placement, clock
// accumulator and high score.
type Game struct {
	settings  Settings
	grid      grid.Grid
	state     State
	placer    *FoodPlacer
	clock     TimeProvider
	lastStep  time.Time
	highScore int
	newHigh   bool
	scores    HighScoreStore
	listeners []Listener
	log       zerolog.Logger
}

// New validates settings and returns a game in PhaseStart with a freshly
// reset board, so the first frame has something to draw.
func New(settings Settings, opts Options) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	g, err := settings.Grid()
	if err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	gm := &Game{
		settings:  settings,
		grid:      g,
		placer:    NewFoodPlacer(settings.Seed, settings.FoodAttempts),
		clock:     clock,
		scores:    opts.HighScores,
		listeners: opts.Listeners,
		log:       logger,
	}
	gm.highScore = gm.loadHighScore()
	gm.reset()
	gm.state.Phase = PhaseStart
	return gm, nil
}

// Grid returns the board the game is played on.
func (g *Game) Grid() grid.Grid {
	return g.grid
}

// Settings returns the ruleset in use.
func (g *Game) Settings() Settings {
	return g.settings
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.state.Phase
}

// HighScore returns the best score known to this game.
func (g *Game) HighScore() int {
	return g.highScore
}

// AddListener registers l for subsequent events.
func (g *Game) AddListener(l Listener) {
	g.listeners = append(g.listeners, l)
}

// Start begins a fresh game from the title screen.
func (g *Game) Start() bool {
	if g.state.Phase != PhaseStart {
		return false
	}
	g.begin()
	g.log.Debug().Msg("game started")
	return true
}

// Restart begins a fresh game after a game over.
func (g *Game) Restart() bool {
	if g.state.Phase != PhaseGameOver {
		return false
	}
	g.begin()
	g.log.Debug().Msg("game restarted")
	return true
}

// Pause halts ticking. Only applies while playing.
func (g *Game) Pause() bool {
	if g.state.Phase != PhasePlaying {
		return false
	}
	g.state.Phase = PhasePaused
	return true
}

// VisibilityLost pauses a running game when its display goes away.
func (g *Game) VisibilityLost() bool {
	return g.Pause()
}

// Resume continues a paused game. Time spent paused never counts toward the
// next tick.
func (g *Game) Resume() bool {
	if g.state.Phase != PhasePaused {
		return false
	}
	g.state.Phase = PhasePlaying
	g.lastStep = g.clock.Now()
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (g *Game) TogglePause() bool {
	switch g.state.Phase {
	case PhasePlaying:
		return g.Pause()
	case PhasePaused:
		return g.Resume()
	}
	return false
}

// Submit feeds a directional intent. On the title screen any direction
// starts the game; while playing it becomes the pending direction unless it
// would reverse the snake into itself. Elsewhere it is ignored.
func (g *Game) Submit(d grid.Direction) bool {
	switch g.state.Phase {
	case PhaseStart:
		if !d.Valid() {
			return false
		}
		return g.Start()
	case PhasePlaying:
		return submit(&g.state, d)
	}
	return false
}

// Tick runs at most one simulation step if a full tick interval has elapsed
// since the last step. A long gap between calls still yields a single step.
// It reports whether a step ran.
func (g *Game) Tick(now time.Time) bool {
	if g.state.Phase != PhasePlaying {
		return false
	}
	if now.Sub(g.lastStep) < g.state.Interval {
		return false
	}
	g.lastStep = now

	res := Step(&g.state, g.grid, g.settings, g.placeFood)
	switch {
	case res.Collision != CollisionNone:
		g.gameOver(res.Collision)
	case res.Ate:
		g.emit(g.event(EventFoodEaten))
		if res.LevelUp {
			g.log.Debug().Int("level", g.state.Level).Dur("interval", g.state.Interval).Msg("level up")
			g.emit(g.event(EventLevelUp))
		}
	}
	return true
}

// Snapshot returns a copy of the state for rendering.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Grid:         g.grid,
		Snake:        append([]grid.Cell(nil), g.state.Snake...),
		Food:         g.state.Food,
		Direction:    g.state.Direction,
		Score:        g.state.Score,
		HighScore:    g.highScore,
		NewHighScore: g.newHigh,
		Level:        g.state.Level,
		Interval:     g.state.Interval,
		Speed:        g.settings.SpeedFor(g.state.Interval),
		Phase:        g.state.Phase,
	}
}

// begin resets the board and enters PhasePlaying with the clock anchored now.
func (g *Game) begin() {
	g.reset()
	g.state.Phase = PhasePlaying
	g.lastStep = g.clock.Now()
}

// reset puts a one-cell snake heading right at the board center.
func (g *Game) reset() {
	g.state.Snake = append(g.state.Snake[:0], g.grid.Center())
	g.state.Direction = grid.Right
	g.state.Pending = grid.Right
	g.state.Score = 0
	g.state.Level = 1
	g.state.Interval = g.settings.InitialTick
	g.state.Food = g.placeFood(g.state.Snake)
	g.newHigh = false
}

func (g *Game) placeFood(snake []grid.Cell) grid.Cell {
	return g.placer.Place(g.grid, snake)
}

func (g *Game) gameOver(c Collision) {
	g.state.Phase = PhaseGameOver
	g.newHigh = g.state.Score > g.highScore
	if g.newHigh {
		g.highScore = g.state.Score
		g.saveHighScore()
	}
	g.log.Info().
		Str("collision", c.String()).
		Int("score", g.state.Score).
		Int("length", len(g.state.Snake)).
		Bool("new_high_score", g.newHigh).
		Msg("game over")

	e := g.event(EventGameOver)
	e.Collision = c
	e.NewHighScore = g.newHigh
	g.emit(e)
}

func (g *Game) event(t EventType) Event {
	return Event{
		Type:   t,
		Score:  g.state.Score,
		Level:  g.state.Level,
		Length: len(g.state.Snake),
	}
}

// emit delivers e to every listener. A panicking listener is logged and
// skipped; it never reaches the game state.
func (g *Game) emit(e Event) {
	for _, l := range g.listeners {
		g.notify(l, e)
	}
}

func (g *Game) notify(l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Interface("panic", r).Str("event", e.Type.String()).Msg("listener failed")
		}
	}()
	l.OnEvent(e)
}

// loadHighScore returns the stored high score, or 0 when there is no store
// or it fails.
func (g *Game) loadHighScore() int {
	if g.scores == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	score, err := g.scores.LoadHighScore(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("could not load high score")
		return 0
	}
	if score < 0 {
		return 0
	}
	return score
}

func (g *Game) saveHighScore() {
	if g.scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := g.scores.SaveHighScore(ctx, g.highScore); err != nil {
		g.log.Warn().Err(err).Int("score", g.highScore).Msg("could not save high score")
	}
}
