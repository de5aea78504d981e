package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					email TEXT UNIQUE NOT NULL,
					role TEXT NOT NULL,
					partner_id TEXT,
					is_active INTEGER DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS partners (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					contact_email TEXT,
					description TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS programs (
					id TEXT PRIMARY KEY,
					partner_id TEXT NOT NULL,
					name TEXT NOT NULL,
					description TEXT,
					budget REAL DEFAULT 0,
					currency TEXT,
					start_date DATETIME,
					end_date DATETIME,
					selection_criteria TEXT,
					evaluation_criteria TEXT,
					custom_ai_prompt TEXT,
					is_active INTEGER DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (partner_id) REFERENCES partners(id)
				)`,
				`CREATE INDEX idx_programs_partner ON programs(partner_id)`,

				`CREATE TABLE IF NOT EXISTS projects (
					id TEXT PRIMARY KEY,
					program_id TEXT NOT NULL,
					submitter_id TEXT NOT NULL,
					title TEXT NOT NULL,
					description TEXT,
					status TEXT NOT NULL DEFAULT 'draft',
					recommended_status TEXT,
					budget REAL DEFAULT 0,
					tags TEXT,
					form_data TEXT,
					evaluation_scores TEXT,
					evaluation_comments TEXT,
					total_evaluation_score REAL DEFAULT 0,
					manually_submitted INTEGER DEFAULT 0,
					eligibility_notes TEXT,
					submission_date DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (program_id) REFERENCES programs(id),
					FOREIGN KEY (submitter_id) REFERENCES users(id)
				)`,
				`CREATE INDEX idx_projects_status ON projects(status)`,
				`CREATE INDEX idx_projects_program ON projects(program_id)`,
				`CREATE INDEX idx_projects_submitter ON projects(submitter_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add form templates",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS form_templates (
					id TEXT PRIMARY KEY,
					program_id TEXT NOT NULL,
					name TEXT NOT NULL,
					fields TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (program_id) REFERENCES programs(id)
				)`,
				`CREATE INDEX idx_form_templates_program ON form_templates(program_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add evaluation notes and updated_at index for activity feeds",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE projects ADD COLUMN evaluation_notes TEXT`,
				`CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		slog.Info("Applying migration",
			"version", migration.Version,
			"description", migration.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	final, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d after migration, expected %d", final, ExpectedSchemaVersion)
	}

	return nil
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
