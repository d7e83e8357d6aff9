package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PlayerKeys binds player names to ssh key fingerprints.
type PlayerKeys interface {
	// ClaimName records fingerprint as the owner of name if it has none,
	// and reports whether fingerprint owns name.
	ClaimName(ctx context.Context, name, fingerprint string) (bool, error)
}

// Players is the SQLite PlayerKeys.
type Players struct {
	db *sql.DB
}

func NewPlayers(db *sql.DB) *Players {
	return &Players{db: db}
}

func (p *Players) ClaimName(ctx context.Context, name, fingerprint string) (bool, error) {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO players (name, key_fingerprint, created_at) VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING`,
		name, fingerprint, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", name, err)
	}

	var owner string
	if err := p.db.QueryRowContext(ctx, `SELECT key_fingerprint FROM players WHERE name=?`, name).Scan(&owner); err != nil {
		return false, fmt.Errorf("owner of %s: %w", name, err)
	}
	return owner == fingerprint, nil
}
