package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type ProfileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get returns the stored profile, or nil when the key has never been saved.
func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, state, updated_at FROM profiles WHERE key = ?`, key)

	var p Profile
	var state string
	if err := row.Scan(&p.Key, &state, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	p.State = []byte(state)
	return &p, nil
}

// Put writes the full state snapshot for key, replacing any previous one.
func (r *ProfileRepo) Put(ctx context.Context, key string, state []byte, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (key, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, key, string(state), now)
	if err != nil {
		return fmt.Errorf("profile put: %w", err)
	}
	return nil
}

func (r *ProfileRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM profiles ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("profile keys: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("profile keys scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("profile keys rows: %w", err)
	}
	return out, nil
}
