package postgres

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

// Migrate applies up to max migrations from dir; zero means all of them.
func Migrate(db *sql.DB, dir string, direction migrate.MigrationDirection, max int) (int, error) {
	return migrate.ExecMax(db, "postgres", &migrate.FileMigrationSource{Dir: dir}, direction, max)
}
