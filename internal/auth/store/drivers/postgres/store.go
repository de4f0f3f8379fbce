// Package postgres is the optional PostgreSQL store driver, using pgx
// through its database/sql adapter.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/store/sqlstore"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// NewStore connects to dsn and verifies the connection.
func NewStore(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return FromDB(db), nil
}

// FromDB wraps an existing pool, for tests that supply a mock connection.
func FromDB(db *sql.DB) *sqlstore.Store {
	return sqlstore.New(db, dialect{})
}

type dialect struct{}

func (dialect) Name() string             { return "postgres" }
func (dialect) Placeholder(n int) string { return sqlstore.DollarPlaceholder(n) }
func (dialect) Migrate(db *sql.DB) error { return migrateUp(db) }

func (dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
