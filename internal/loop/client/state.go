package client

import (
	"time"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
)

// Screen identifies what the client shows on top of the board. A change of
// screen triggers a full terminal clear.
type Screen int

const (
	ScreenStart    Screen = iota // Title and controls
	ScreenPlaying                // Board and HUD only
	ScreenPaused                 // Paused overlay
	ScreenGameOver               // Final score and restart prompt
	ScreenInactive               // Inactivity warning
	ScreenShutdown               // Server is shutting down
	ScreenTooSmall               // Terminal cannot fit the board
)

// ClientState holds per-connection UI state. The game itself lives in
// Client.game.
type ClientState struct {
	Input         input.Input
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	lastFrame     time.Time
	prevScreen    Screen
	borderDirty   bool       // Border must be redrawn (after a clear)
	shutdown      bool       // Server announced shutdown
	shutdownTimer float64    // Countdown before auto-disconnect on shutdown
	isInactive    bool       // Whether the client is in inactive warning state
	reportedScore int        // Highest score already sent to the server
	lastPhase     game.Phase // Phase seen by the previous update, for logging
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:     true,
		prevScreen:  -1,
		borderDirty: true,
	}
}

// screenFor picks the screen for the current state. Shutdown wins over
// everything, then terminal size, then inactivity, then the game phase.
func (s *ClientState) screenFor(phase game.Phase, fits bool) Screen {
	switch {
	case s.shutdown:
		return ScreenShutdown
	case !fits:
		return ScreenTooSmall
	case s.isInactive:
		return ScreenInactive
	}
	switch phase {
	case game.PhasePlaying:
		return ScreenPlaying
	case game.PhasePaused:
		return ScreenPaused
	case game.PhaseGameOver:
		return ScreenGameOver
	}
	return ScreenStart
}
