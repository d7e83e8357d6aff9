package game

import "context"

// EventType identifies a game event.
type EventType int

const (
	EventFoodEaten EventType = iota
	EventLevelUp
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventFoodEaten:
		return "food_eaten"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

// Event is delivered to listeners after the state change it describes.
type Event struct {
	Type         EventType
	Score        int
	Level        int
	Length       int
	Collision    Collision // EventGameOver only
	NewHighScore bool      // EventGameOver only
}

// Listener receives game events. Implementations must not block; slow work
// (audio, network) belongs on the listener's own goroutine.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// HighScoreStore persists the best score of one player.
type HighScoreStore interface {
	LoadHighScore(ctx context.Context) (int, error)
	SaveHighScore(ctx context.Context, score int) error
}
