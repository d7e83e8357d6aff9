package game

import "github.com/tomz197/snake/internal/grid"

// Collision identifies what ended a game.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
)

func (c Collision) String() string {
	switch c {
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	}
	return "none"
}

// StepResult describes what one tick did.
type StepResult struct {
	Collision Collision
	Ate       bool
	LevelUp   bool
}

// Step advances st by one tick. On a collision the snake is left exactly as
// it was before the tick and the caller is expected to end the game.
// place is called for the new food cell after the snake has grown.
func Step(st *State, g grid.Grid, s Settings, place func(snake []grid.Cell) grid.Cell) StepResult {
	st.Direction = st.Pending
	head := st.Head().Add(st.Direction)

	if !g.InBounds(head) {
		return StepResult{Collision: CollisionWall}
	}
	// The tail still counts: moving into the cell it is about to leave is fatal.
	if st.Occupies(head) {
		return StepResult{Collision: CollisionSelf}
	}

	if head == st.Food {
		st.Snake = append(st.Snake, grid.Cell{})
		copy(st.Snake[1:], st.Snake[:len(st.Snake)-1])
		st.Snake[0] = head

		levelUp := award(st, s)
		st.Food = place(st.Snake)
		return StepResult{Ate: true, LevelUp: levelUp}
	}

	copy(st.Snake[1:], st.Snake[:len(st.Snake)-1])
	st.Snake[0] = head
	return StepResult{}
}

// submit buffers d as the next direction unless it is invalid or reverses
// a snake longer than one cell onto itself. It reports whether d was taken.
func submit(st *State, d grid.Direction) bool {
	if !d.Valid() {
		return false
	}
	if len(st.Snake) > 1 && d == st.Direction.Opposite() {
		return false
	}
	st.Pending = d
	return true
}
