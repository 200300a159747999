package otps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"accountd/internal/dbx"
	"accountd/internal/shared"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, otp *EmailOTP) error {

	query :=
		`INSERT INTO email_otps (user_id, purpose, code_hash, expires_at)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		otp.UserID, otp.Purpose, otp.CodeHash, otp.ExpiresAt).Scan(&otp.ID, &otp.CreatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// LatestActive fetches the newest unconsumed code; older unconsumed codes
// for the same user are superseded and never looked at again. The id
// tiebreak keeps the ordering deterministic when two codes share a
// created_at timestamp.
func (r *PostgresRepository) LatestActive(ctx context.Context, userID string, purpose Purpose) (*EmailOTP, error) {
	query :=
		`SELECT id, user_id, purpose, code_hash, expires_at, used_at, created_at
		 FROM email_otps
		 WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1
		 `

	otp := &EmailOTP{}
	err := r.db.QueryRowContext(ctx, query, userID, purpose).Scan(
		&otp.ID, &otp.UserID, &otp.Purpose, &otp.CodeHash,
		&otp.ExpiresAt, &otp.UsedAt, &otp.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return otp, nil
}

// MarkUsed consumes a code exactly once: the used_at IS NULL guard makes a
// second call report shared.ErrorNotFound instead of silently re-stamping.
func (r *PostgresRepository) MarkUsed(ctx context.Context, id string) error {
	query :=
		`UPDATE email_otps SET used_at = now()
		 WHERE id = $1 AND used_at IS NULL
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return shared.ErrorNotFound
	}

	return nil
}
