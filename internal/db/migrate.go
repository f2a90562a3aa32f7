package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent and re-run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
