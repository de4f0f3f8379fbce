// Package sqlite is the default store driver, backed by the pure-Go
// modernc.org/sqlite engine.
package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/docit/internal/auth/store/sqlstore"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// NewStore opens the database file at path. Foreign keys and a busy timeout
// are enabled on every pooled connection, and file databases use WAL.
func NewStore(path string) (*sqlstore.Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}

	// Each connection to ":memory:" is its own database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	return sqlstore.New(db, dialect{}), nil
}

func dsn(path string) string {
	pragmas := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_time_format=sqlite",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + strings.Join(pragmas, "&")
}

type dialect struct{}

func (dialect) Name() string             { return "sqlite" }
func (dialect) Placeholder(int) string   { return "?" }
func (dialect) Migrate(db *sql.DB) error { return migrateUp(db) }

func (dialect) IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
