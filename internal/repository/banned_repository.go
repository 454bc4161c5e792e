package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type BannedUserRepository struct {
	pool *pgxpool.Pool
}

func NewBannedUserRepository(pool *pgxpool.Pool) *BannedUserRepository {
	return &BannedUserRepository{pool: pool}
}

func (r *BannedUserRepository) Create(ctx context.Context, banned models.BannedUser) error {
	const query = `
		INSERT INTO banned_users (
			id, email, phone, name, banned_by, reason, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		banned.ID,
		banned.Email,
		banned.Phone,
		banned.Name,
		banned.BannedBy,
		banned.Reason,
	)
	return mapWriteError(err)
}

// ExistsByEmailOrPhone reports whether a ban record matches either identifier.
// An empty phone never matches.
func (r *BannedUserRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM banned_users
			WHERE email = $1 OR (phone <> '' AND phone = $2)
		)
	`
	row := r.pool.QueryRow(ctx, query, email, phone)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
