package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// HighScores is the best score of one player, keyed by name. It satisfies
// game.HighScoreStore.
type HighScores struct {
	db     *sql.DB
	player string
}

// NewHighScores binds the high_scores row for player.
func NewHighScores(db *sql.DB, player string) *HighScores {
	return &HighScores{db: db, player: player}
}

// LoadHighScore returns the stored best, or 0 if the player has none.
func (h *HighScores) LoadHighScore(ctx context.Context) (int, error) {
	var score int
	err := h.db.QueryRowContext(ctx, `SELECT score FROM high_scores WHERE player=?`, h.player).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score for %s: %w", h.player, err)
	}
	return score, nil
}

// SaveHighScore records score unless a higher one is already stored.
func (h *HighScores) SaveHighScore(ctx context.Context, score int) error {
	_, err := h.db.ExecContext(ctx, `
INSERT INTO high_scores (player, score, updated_at) VALUES (?, ?, ?)
ON CONFLICT(player) DO UPDATE SET score=excluded.score, updated_at=excluded.updated_at
WHERE excluded.score > high_scores.score`,
		h.player, score, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save high score for %s: %w", h.player, err)
	}
	return nil
}
