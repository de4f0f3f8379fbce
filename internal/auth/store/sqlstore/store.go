// Package sqlstore implements store.Store over database/sql. The sqlite and
// postgres drivers supply a Dialect and share these repositories.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/docit/internal/auth/store"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures what differs between database engines.
type Dialect interface {
	// Name identifies the engine in logs.
	Name() string

	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder(n int) string

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool

	// Migrate applies embedded schema migrations to db.
	Migrate(db *sql.DB) error
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ store.Store = (*Store)(nil)

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d}
}

// DB exposes the pool for drivers and tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ApplyMigrations() error {
	if err := s.dialect.Migrate(s.db); err != nil {
		return fmt.Errorf("%s migrations: %w", s.dialect.Name(), err)
	}
	return nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	tx := &txStore{tx: sqlTx, dialect: s.dialect}

	// Rollback after a successful commit returns sql.ErrTxDone, which we ignore.
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: newQuerier(s.db, s.dialect)} }
func (s *Store) Enrollments() store.Enrollments     { return &enrollmentsRepo{q: newQuerier(s.db, s.dialect)} }
func (s *Store) RecoveryCodes() store.RecoveryCodes { return &recoveryCodesRepo{q: newQuerier(s.db, s.dialect)} }

type txStore struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer Store owns the pool.
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                 { return &usersRepo{q: newQuerier(t.tx, t.dialect)} }
func (t *txStore) Enrollments() store.Enrollments     { return &enrollmentsRepo{q: newQuerier(t.tx, t.dialect)} }
func (t *txStore) RecoveryCodes() store.RecoveryCodes { return &recoveryCodesRepo{q: newQuerier(t.tx, t.dialect)} }

// querier rewrites "?" markers into the dialect's placeholders. Queries in
// this package never contain a literal question mark.
type querier struct {
	db      DBTX
	dialect Dialect
}

func newQuerier(db DBTX, d Dialect) querier {
	return querier{db: db, dialect: d}
}

func (q querier) rebind(query string) string {
	if q.dialect.Placeholder(1) == "?" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString(q.dialect.Placeholder(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (q querier) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.db.ExecContext(ctx, q.rebind(query), args...)
}

func (q querier) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.rebind(query), args...)
}

// DollarPlaceholder renders $n markers for postgres-style engines.
func DollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// requireRow turns a zero-row update into store.ErrNotFound.
func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
