package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Repos bundles every repo bound to the same connection or transaction.
type Repos struct {
	Profiles    *ProfileRepo
	Runs        *RunRepo
	Generations *GenerationRepo
}

func NewRepos(db DBTX) Repos {
	return Repos{
		Profiles:    NewProfileRepo(db),
		Runs:        NewRunRepo(db),
		Generations: NewGenerationRepo(db),
	}
}

// WithTx runs fn with repos bound to a single SQL transaction. The
// transaction is committed only when fn returns nil.
func WithTx(ctx context.Context, db *sql.DB, fn func(r Repos) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
