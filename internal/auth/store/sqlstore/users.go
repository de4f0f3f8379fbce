package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
	"github.com/aussiebroadwan/docit/internal/auth/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, username, email, password_hash, mfa_enabled, mfa_secret, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	now := u.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var id int64
	err := r.q.queryRow(ctx,
		`INSERT INTO users (username, email, password_hash, mfa_enabled, mfa_secret, created_at, updated_at)
		 VALUES (?, ?, ?, ?, NULL, ?, ?)
		 RETURNING id`,
		u.Username, u.Email, u.PasswordHash, false, now, now,
	).Scan(&id)
	if err != nil {
		if r.q.dialect.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", store.ErrAlreadyExists, err)
		}
		return 0, err
	}
	return id, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) EnableMFA(ctx context.Context, userID int64, encryptedSecret string, now time.Time) error {
	return requireRow(r.q.exec(ctx,
		`UPDATE users SET mfa_enabled = ?, mfa_secret = ?, updated_at = ? WHERE id = ?`,
		true, encryptedSecret, now.UTC(), userID,
	))
}

func (r *usersRepo) DisableMFA(ctx context.Context, userID int64, now time.Time) error {
	return requireRow(r.q.exec(ctx,
		`UPDATE users SET mfa_enabled = ?, mfa_secret = NULL, updated_at = ? WHERE id = ?`,
		false, now.UTC(), userID,
	))
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u      domain.User
		secret sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.MFAEnabled, &secret, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.MFASecret = stringPtr(secret)
	return u, nil
}
