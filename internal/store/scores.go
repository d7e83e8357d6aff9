package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one verified leaderboard result.
type Entry struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Length    int       `json:"length"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreStore records leaderboard entries.
type ScoreStore interface {
	// InsertScore returns ErrDuplicate if e.ID was already recorded.
	InsertScore(ctx context.Context, e Entry) error
	// TopScores returns up to limit entries, best first; ties go to the
	// earlier entry.
	TopScores(ctx context.Context, limit int) ([]Entry, error)
}

// Scores is the SQLite ScoreStore.
type Scores struct {
	db *sql.DB
}

func NewScores(db *sql.DB) *Scores {
	return &Scores{db: db}
}

func (s *Scores) InsertScore(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, player, score, level, length, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Player, e.Score, e.Level, e.Length, e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if isConstraint(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert score %s: %w", e.ID, err)
	}
	return nil
}

func (s *Scores) TopScores(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, score, level, length, created_at FROM scores
		 ORDER BY score DESC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Level, &e.Length, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
