package game

import "time"

// LevelFor returns the level reached at score.
func LevelFor(score, levelUpPoints int) int {
	return score/levelUpPoints + 1
}

// IntervalFor returns the tick interval at level, clamped to s.MinTick.
func (s Settings) IntervalFor(level int) time.Duration {
	return max(s.InitialTick-time.Duration(level-1)*s.SpeedIncrement, s.MinTick)
}

// SpeedFor expresses interval as a multiple of the starting speed.
func (s Settings) SpeedFor(interval time.Duration) float64 {
	if interval <= 0 {
		return 0
	}
	return float64(s.InitialTick) / float64(interval)
}

// MaxScore is the score of a snake filling every cell of the board.
func (s Settings) MaxScore(cells int) int {
	return (cells - 1) * s.PointsPerFood
}

// award adds one food's points and recomputes level and interval.
// It reports whether the level went up.
func award(st *State, s Settings) bool {
	st.Score += s.PointsPerFood
	level := LevelFor(st.Score, s.LevelUpPoints)
	if level <= st.Level {
		return false
	}
	st.Level = level
	st.Interval = s.IntervalFor(level)
	return true
}
