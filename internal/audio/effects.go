package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Sound names a sound effect.
type Sound int

const (
	SoundEat Sound = iota
	SoundLevelUp
	SoundGameOver
)

// sweep is a sine tone whose frequency and gain both ramp exponentially
// over a fixed duration.
type sweep struct {
	rate             beep.SampleRate
	from, to         float64
	gainFrom, gainTo float64
	total, pos       int
	phase            float64
}

// NewSweep returns a finite sine sweep from one frequency to another.
func NewSweep(from, to float64, d time.Duration, gainFrom, gainTo float64, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		rate:     rate,
		from:     from,
		to:       to,
		gainFrom: gainFrom,
		gainTo:   gainTo,
		total:    rate.N(d),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		p := float64(s.pos) / float64(s.total)
		freq := s.from * math.Pow(s.to/s.from, p)
		gain := s.gainFrom * math.Pow(s.gainTo/s.gainFrom, p)

		val := gain * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// tone is a fixed-length sine note at volume vol (linear, 0..1).
func tone(freq float64, d time.Duration, vol float64, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return generators.Silence(rate.N(d))
	}
	return &effects.Volume{Streamer: beep.Take(rate.N(d), sine), Base: 2, Volume: math.Log2(vol)}
}

// Effect returns a fresh streamer for s.
func Effect(s Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundEat:
		return NewSweep(800, 1200, 100*time.Millisecond, 0.1, 0.01, rate)
	case SoundLevelUp:
		return beep.Seq(
			tone(660, 80*time.Millisecond, 0.1, rate),
			tone(990, 120*time.Millisecond, 0.1, rate),
		)
	case SoundGameOver:
		return NewSweep(440, 110, 400*time.Millisecond, 0.15, 0.01, rate)
	}
	return nil
}
