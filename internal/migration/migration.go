package migration

import (
	"context"

	"cargahoraria/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the course store schema. Every step is idempotent.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createCourseRunsTable(ctx, db); err != nil {
		return errors.DatabaseError("failed to create course_runs table", err)
	}

	if err := r.createCourseRecordsTable(ctx, db); err != nil {
		return errors.DatabaseError("failed to create course_records table", err)
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.DatabaseError("failed to create indexes", err)
	}

	return nil
}

func (r *MigrationRunner) createCourseRunsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS course_runs (
			id UUID PRIMARY KEY,
			workbook TEXT NOT NULL,
			sheet TEXT NOT NULL,
			course_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (workbook, sheet)
		)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createCourseRecordsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS course_records (
			run_id UUID NOT NULL REFERENCES course_runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			code TEXT NOT NULL,
			level TEXT NOT NULL DEFAULT '',
			cycle INTEGER,
			modality TEXT NOT NULL DEFAULT '',
			instructor TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL,
			detected_days JSONB NOT NULL DEFAULT '[]',
			detailed_schedule JSONB NOT NULL DEFAULT '{}',
			start_date DATE,
			end_date DATE,
			midterm_date DATE,
			final_date DATE,
			grade_upload_date DATE,
			enrolled INTEGER,
			expected INTEGER,
			passed INTEGER,
			failed INTEGER,
			no_show INTEGER,
			detail TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, position)
		)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_course_records_code ON course_records(code)`,
		`CREATE INDEX IF NOT EXISTS idx_course_records_language ON course_records(language)`,
	}
	for _, query := range indexes {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
