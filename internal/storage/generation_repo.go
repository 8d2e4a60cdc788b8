package storage

import (
	"context"
	"fmt"
)

type GenerationRepo struct {
	db DBTX
}

func NewGenerationRepo(db DBTX) *GenerationRepo {
	return &GenerationRepo{db: db}
}

func (r *GenerationRepo) Insert(ctx context.Context, g Generation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO generations (id, profile_key, kind, prompt, ok, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, g.ID, g.ProfileKey, g.Kind, g.Prompt, g.OK, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("generation insert: %w", err)
	}
	return nil
}

// ListRecent returns the latest generations for a profile, newest first.
func (r *GenerationRepo) ListRecent(ctx context.Context, profileKey string, limit int) ([]Generation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, profile_key, kind, COALESCE(prompt, ''), ok, created_at
		FROM generations
		WHERE profile_key = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, profileKey, limit)
	if err != nil {
		return nil, fmt.Errorf("generation list: %w", err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.ProfileKey, &g.Kind, &g.Prompt, &g.OK, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("generation scan: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("generation rows: %w", err)
	}
	return out, nil
}
