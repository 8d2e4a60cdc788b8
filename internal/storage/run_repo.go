package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RunRepo stores at most one active run per profile.
type RunRepo struct {
	db DBTX
}

func NewRunRepo(db DBTX) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) Get(ctx context.Context, profileKey string) (*ActiveRun, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT profile_key, state, started_at, updated_at
		FROM runs
		WHERE profile_key = ?
	`, profileKey)

	var ar ActiveRun
	var state string
	if err := row.Scan(&ar.ProfileKey, &state, &ar.StartedAt, &ar.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("run get: %w", err)
	}
	ar.State = []byte(state)
	return &ar, nil
}

func (r *RunRepo) Put(ctx context.Context, profileKey string, state []byte, startedAt, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (profile_key, state, started_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(profile_key) DO UPDATE SET
			state = excluded.state,
			started_at = excluded.started_at,
			updated_at = excluded.updated_at
	`, profileKey, string(state), startedAt, now)
	if err != nil {
		return fmt.Errorf("run put: %w", err)
	}
	return nil
}

// Delete removes the active run. Deleting a missing run is not an error.
func (r *RunRepo) Delete(ctx context.Context, profileKey string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE profile_key = ?`, profileKey); err != nil {
		return fmt.Errorf("run delete: %w", err)
	}
	return nil
}
