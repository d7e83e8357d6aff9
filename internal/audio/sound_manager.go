// Package audio plays the game's sound effects through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/snake/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager mixes effects into the speaker. Until Initialize succeeds
// every Play is a no-op, so a machine without audio plays silently.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences pending sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play queues s and returns immediately.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	st := Effect(s, sampleRate)
	if st == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
}

// OnEvent maps game events to sounds.
func (sm *SoundManager) OnEvent(e game.Event) {
	switch e.Type {
	case game.EventFoodEaten:
		sm.Play(SoundEat)
	case game.EventLevelUp:
		sm.Play(SoundLevelUp)
	case game.EventGameOver:
		sm.Play(SoundGameOver)
	}
}
