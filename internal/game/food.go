package game

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/tomz197/snake/internal/grid"
)

// FoodPlacer picks food cells by rejection sampling.
type FoodPlacer struct {
	rng      *rand.Rand
	attempts int
}

// NewFoodPlacer returns a placer drawing from a source seeded with seed.
// A zero seed uses the current time.
func NewFoodPlacer(seed uint64, attempts int) *FoodPlacer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if attempts < 1 {
		attempts = 1
	}
	return &FoodPlacer{
		rng:      rand.New(rand.NewSource(seed)),
		attempts: attempts,
	}
}

// Place samples cells uniformly until one is free of the snake. After the
// attempt budget is spent the last sample is returned even if occupied, so a
// nearly full board never stalls the tick.
func (p *FoodPlacer) Place(g grid.Grid, snake []grid.Cell) grid.Cell {
	var c grid.Cell
	for i := 0; i < p.attempts; i++ {
		c = grid.Cell{X: p.rng.Intn(g.Width), Y: p.rng.Intn(g.Height)}
		if !occupied(snake, c) {
			return c
		}
	}
	return c
}
