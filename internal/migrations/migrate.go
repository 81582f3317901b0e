// Package migrations applies the goose SQL migrations in migrations/ that
// create the design_state slot table and the exports history table. The
// server runs them on startup in dev; production schemas are migrated out
// of band.
package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// modernc.org/sqlite registers as "sqlite" with database/sql but goose
// knows the dialect as "sqlite3".
const sqliteDialect = "sqlite3"

// Up runs all pending SQL migrations found in migrationsDir, typically the
// repository's migrations/ directory.
func Up(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
