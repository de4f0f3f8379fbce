package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/domain"
)

type recoveryCodesRepo struct {
	q querier
}

func (r *recoveryCodesRepo) CreateRecoveryCodes(ctx context.Context, codes []domain.RecoveryCode) error {
	for _, c := range codes {
		_, err := r.q.exec(ctx,
			`INSERT INTO recovery_codes (id, user_id, code_hash, used_at, created_at) VALUES (?, ?, ?, NULL, ?)`,
			c.ID, c.UserID, c.CodeHash, c.CreatedAt.UTC(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *recoveryCodesRepo) ConsumeRecoveryCode(ctx context.Context, userID int64, codeHash string, now time.Time) (bool, error) {
	res, err := r.q.exec(ctx,
		`UPDATE recovery_codes SET used_at = ? WHERE user_id = ? AND code_hash = ? AND used_at IS NULL`,
		now.UTC(), userID, codeHash,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *recoveryCodesRepo) DeleteAllRecoveryCodes(ctx context.Context, userID int64) error {
	_, err := r.q.exec(ctx, `DELETE FROM recovery_codes WHERE user_id = ?`, userID)
	return err
}

func (r *recoveryCodesRepo) CountUnusedRecoveryCodes(ctx context.Context, userID int64) (int, error) {
	var n sql.NullInt64
	err := r.q.queryRow(ctx,
		`SELECT COUNT(*) FROM recovery_codes WHERE user_id = ? AND used_at IS NULL`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return int(n.Int64), nil
}
