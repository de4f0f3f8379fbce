package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
)

type enrollmentsRepo struct {
	q querier
}

func (r *enrollmentsRepo) UpsertEnrollment(ctx context.Context, e domain.PendingEnrollment) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO mfa_enrollments (user_id, secret_encrypted, expires_at, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   secret_encrypted = excluded.secret_encrypted,
		   expires_at = excluded.expires_at,
		   created_at = excluded.created_at`,
		e.UserID, e.SecretEncrypted, e.ExpiresAt.UTC(), e.CreatedAt.UTC(),
	)
	return err
}

func (r *enrollmentsRepo) GetEnrollment(ctx context.Context, userID int64) (domain.PendingEnrollment, error) {
	var e domain.PendingEnrollment
	err := r.q.queryRow(ctx,
		`SELECT user_id, secret_encrypted, expires_at, created_at FROM mfa_enrollments WHERE user_id = ?`,
		userID,
	).Scan(&e.UserID, &e.SecretEncrypted, &e.ExpiresAt, &e.CreatedAt)
	if err != nil {
		return domain.PendingEnrollment{}, mapNotFound(err)
	}
	return e, nil
}

func (r *enrollmentsRepo) DeleteEnrollment(ctx context.Context, userID int64) error {
	_, err := r.q.exec(ctx, `DELETE FROM mfa_enrollments WHERE user_id = ?`, userID)
	return err
}

func (r *enrollmentsRepo) ClaimEnrollment(ctx context.Context, userID int64, secretEncrypted string) error {
	return requireRow(r.q.exec(ctx,
		`DELETE FROM mfa_enrollments WHERE user_id = ? AND secret_encrypted = ?`,
		userID, secretEncrypted,
	))
}

func (r *enrollmentsRepo) DeleteExpiredEnrollments(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.exec(ctx, `DELETE FROM mfa_enrollments WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
