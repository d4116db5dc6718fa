package migration

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// Unit is one ordered migration. Run must be idempotent on its own
// (information_schema checks, IF NOT EXISTS) because older deployments
// ran without the schema_version ledger.
type Unit struct {
	Ordinal int
	Name    string
	Run     func(ctx context.Context, tx *sql.Tx) error
}

// Runner applies units in order, each in its own transaction, recording
// every applied unit in schema_version. In strict mode the first failure
// aborts; otherwise failures are logged and the remaining units still run.
type Runner struct {
	db     *sql.DB
	strict bool
	logger *zap.Logger
	units  []Unit
}

func NewRunner(db *sql.DB, strict bool, logger *zap.Logger) *Runner {
	return &Runner{
		db:     db,
		strict: strict,
		logger: logger.Named("migration"),
		units:  Units(),
	}
}

func (r *Runner) Run(ctx context.Context) error {
	if err := r.ensureVersionTable(ctx); err != nil {
		return fmt.Errorf("ensure schema_version: %w", err)
	}

	applied, err := r.appliedOrdinals(ctx)
	if err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	ran := 0
	for _, unit := range r.units {
		if applied[unit.Ordinal] {
			continue
		}

		if err := r.apply(ctx, unit); err != nil {
			if r.strict {
				return fmt.Errorf("migration %d (%s): %w", unit.Ordinal, unit.Name, err)
			}
			r.logger.Warn("migration failed, continuing",
				zap.Int("ordinal", unit.Ordinal),
				zap.String("name", unit.Name),
				zap.Error(err),
			)
			continue
		}
		ran++
	}

	r.logger.Info("migrations done",
		zap.Int("applied_now", ran),
		zap.Int("already_applied", len(applied)),
	)
	return nil
}

func (r *Runner) apply(ctx context.Context, unit Unit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := unit.Run(ctx, tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (ordinal, name) VALUES ($1, $2)`,
		unit.Ordinal, unit.Name,
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info("migration applied",
		zap.Int("ordinal", unit.Ordinal),
		zap.String("name", unit.Name),
	)
	return nil
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			ordinal    INTEGER PRIMARY KEY,
			name       VARCHAR(120) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (r *Runner) appliedOrdinals(ctx context.Context) (map[int]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT ordinal FROM schema_version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var ordinal int
		if err := rows.Scan(&ordinal); err != nil {
			return nil, err
		}
		applied[ordinal] = true
	}
	return applied, rows.Err()
}

// --- information_schema helpers shared by units ---

func tableExists(ctx context.Context, tx *sql.Tx, table string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, table).Scan(&exists)
	return exists, err
}

func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = $1 AND column_name = $2
		)`, table, column).Scan(&exists)
	return exists, err
}

func constraintExists(ctx context.Context, tx *sql.Tx, table, constraint string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_schema = 'public' AND table_name = $1 AND constraint_name = $2
		)`, table, constraint).Scan(&exists)
	return exists, err
}
