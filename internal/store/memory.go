package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryHighScores keeps a single best score in process memory.
type MemoryHighScores struct {
	mu    sync.RWMutex
	score int
}

func NewMemoryHighScores() *MemoryHighScores {
	return &MemoryHighScores{}
}

func (m *MemoryHighScores) LoadHighScore(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.score, nil
}

func (m *MemoryHighScores) SaveHighScore(_ context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.score {
		m.score = score
	}
	return nil
}

// MemoryScores is an in-memory ScoreStore.
type MemoryScores struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryScores() *MemoryScores {
	return &MemoryScores{entries: make(map[string]Entry)}
}

func (m *MemoryScores) InsertScore(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; ok {
		return ErrDuplicate
	}
	m.entries[e.ID] = e
	return nil
}

func (m *MemoryScores) TopScores(_ context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MemoryPlayers is an in-memory PlayerKeys.
type MemoryPlayers struct {
	mu     sync.Mutex
	owners map[string]string
}

func NewMemoryPlayers() *MemoryPlayers {
	return &MemoryPlayers{owners: make(map[string]string)}
}

func (m *MemoryPlayers) ClaimName(_ context.Context, name, fingerprint string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, ok := m.owners[name]
	if !ok {
		m.owners[name] = fingerprint
		return true, nil
	}
	return owner == fingerprint, nil
}
