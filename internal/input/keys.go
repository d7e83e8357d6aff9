// Package input decodes terminal input and maps it to game actions.
package input

import (
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
)

// Key is a decoded key press.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyEscape
	KeyPause
	KeyQuit
)

// Direction returns the direction bound to k, if any.
func (k Key) Direction() (grid.Direction, bool) {
	switch k {
	case KeyUp:
		return grid.Up, true
	case KeyDown:
		return grid.Down, true
	case KeyLeft:
		return grid.Left, true
	case KeyRight:
		return grid.Right, true
	}
	return grid.Direction{}, false
}

// Controller is the part of a game that player input drives.
type Controller interface {
	Phase() game.Phase
	Start() bool
	Restart() bool
	Resume() bool
	TogglePause() bool
	Submit(d grid.Direction) bool
}

// Dispatch applies k to c and reports whether the player asked to quit.
//
//	Space       start, pause or resume
//	Enter       start or restart
//	Escape, P   pause or resume
//	directions  steer (and start from the title screen)
func Dispatch(c Controller, k Key) (quit bool) {
	if d, ok := k.Direction(); ok {
		c.Submit(d)
		return false
	}
	switch k {
	case KeySpace:
		if c.Phase() == game.PhaseStart {
			c.Start()
		} else {
			c.TogglePause()
		}
	case KeyEnter:
		if c.Phase() == game.PhaseGameOver {
			c.Restart()
		} else {
			c.Start()
		}
	case KeyEscape, KeyPause:
		c.TogglePause()
	case KeyQuit:
		return true
	}
	return false
}

// Tap handles a click or tap on the board: it starts, resumes or restarts
// the game depending on the phase. While playing it does nothing.
func Tap(c Controller) {
	switch c.Phase() {
	case game.PhaseStart:
		c.Start()
	case game.PhasePaused:
		c.Resume()
	case game.PhaseGameOver:
		c.Restart()
	}
}
