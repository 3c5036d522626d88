package postgres

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"goassoc/domain/task"
	"goassoc/internal/errors"
	"goassoc/ports"
)

// Schema for the write-only results archive. Applied at startup when an
// archive database is configured.
const archiveSchema = `
CREATE TABLE IF NOT EXISTS task_results (
	task_id     TEXT PRIMARY KEY,
	status      TEXT NOT NULL,
	steps       JSONB NOT NULL,
	error_logs  JSONB NOT NULL,
	message     TEXT,
	bundle      JSONB,
	started_at  TIMESTAMPTZ NOT NULL,
	archived_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// ArchiveRepository persists finalized task records to PostgreSQL for
// audit. It is write-only: nothing in the task lifecycle reads it back.
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository creates the archive repository and ensures its
// schema exists.
func NewArchiveRepository(db *sqlx.DB) (ports.Archive, error) {
	if _, err := db.Exec(archiveSchema); err != nil {
		return nil, errors.Wrap(err, "failed to create task_results table")
	}
	return &ArchiveRepository{db: db}, nil
}

// SaveResult inserts one terminal task record. Re-archiving the same task
// id overwrites the previous row.
func (r *ArchiveRepository) SaveResult(ctx context.Context, rec task.Record) error {
	steps, err := json.Marshal(rec.StepsCompleted)
	if err != nil {
		return errors.Wrap(err, "failed to marshal steps")
	}
	errLogs, err := json.Marshal(rec.ErrorLogs)
	if err != nil {
		return errors.Wrap(err, "failed to marshal error logs")
	}
	var bundle []byte
	if rec.Bundle != nil {
		bundle, err = json.Marshal(rec.Bundle)
		if err != nil {
			return errors.Wrap(err, "failed to marshal results bundle")
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO task_results (task_id, status, steps, error_logs, message, bundle, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (task_id) DO UPDATE
		SET status = EXCLUDED.status, steps = EXCLUDED.steps,
		    error_logs = EXCLUDED.error_logs, message = EXCLUDED.message,
		    bundle = EXCLUDED.bundle, archived_at = NOW()
	`, rec.ID.String(), string(rec.Status), steps, errLogs, rec.Message, bundle, rec.StartTime)
	if err != nil {
		return errors.Wrap(err, "failed to archive task result")
	}
	return nil
}
