package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are exposed as methods so a Tx-scoped
// Store hands out repos bound to the same transaction.
type Store interface {
	Users() Users
	Enrollments() Enrollments
	RecoveryCodes() RecoveryCodes

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a user and returns the assigned id. Returns
	// ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername matches case-sensitively.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// EnableMFA sets mfa_enabled and mfa_secret in a single statement.
	EnableMFA(ctx context.Context, userID int64, encryptedSecret string, now time.Time) error

	// DisableMFA clears mfa_enabled and mfa_secret in a single statement.
	DisableMFA(ctx context.Context, userID int64, now time.Time) error
}

type Enrollments interface {
	// UpsertEnrollment replaces any pending enrollment for the user.
	UpsertEnrollment(ctx context.Context, e domain.PendingEnrollment) error

	// GetEnrollment returns the pending enrollment, expired or not.
	GetEnrollment(ctx context.Context, userID int64) (domain.PendingEnrollment, error)

	DeleteEnrollment(ctx context.Context, userID int64) error

	// ClaimEnrollment deletes the pending enrollment only if it still holds
	// secretEncrypted. ErrNotFound means another request consumed or
	// replaced it first.
	ClaimEnrollment(ctx context.Context, userID int64, secretEncrypted string) error

	// DeleteExpiredEnrollments is housekeeping; returns rows removed.
	DeleteExpiredEnrollments(ctx context.Context, now time.Time) (int64, error)
}

type RecoveryCodes interface {
	CreateRecoveryCodes(ctx context.Context, codes []domain.RecoveryCode) error

	// ConsumeRecoveryCode marks an unused code as used. It reports false
	// when no unused code with that hash exists for the user.
	ConsumeRecoveryCode(ctx context.Context, userID int64, codeHash string, now time.Time) (bool, error)

	DeleteAllRecoveryCodes(ctx context.Context, userID int64) error

	CountUnusedRecoveryCodes(ctx context.Context, userID int64) (int, error)
}
