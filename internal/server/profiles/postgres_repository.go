package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"accountd/internal/dbx"
	"accountd/internal/shared"
)

const invalidTextRepresentation = "22P02"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectProfile = `SELECT p.id, p.user_id, p.name, u.email, p.avatar_key, p.created_at, p.updated_at
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 `

func (r *PostgresRepository) Create(ctx context.Context, profile *Profile) error {

	query :=
		`INSERT INTO profiles (user_id, name)
         VALUES ($1, $2)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.Name).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := selectProfile + `WHERE p.user_id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := selectProfile + `WHERE p.id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Profile, error) {
	query := selectProfile + `ORDER BY p.created_at, p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Profile
	for rows.Next() {
		p := &Profile{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Email,
			&p.AvatarKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id string, name string) error {
	query :=
		`UPDATE profiles SET name = $2, updated_at = now()
		 WHERE id = $1
		 `

	return r.execOne(ctx, query, id, name)
}

func (r *PostgresRepository) UpdateAvatarKey(ctx context.Context, id string, key string) error {
	query :=
		`UPDATE profiles SET avatar_key = $2, updated_at = now()
		 WHERE id = $1
		 `

	return r.execOne(ctx, query, id, key)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return shared.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*Profile, error) {
	p := &Profile{}
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email,
		&p.AvatarKey, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		// an id that does not parse as a uuid cannot match any row
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
