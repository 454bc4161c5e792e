package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type ProfileHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewProfileHistoryRepository(pool *pgxpool.Pool) *ProfileHistoryRepository {
	return &ProfileHistoryRepository{pool: pool}
}

func (r *ProfileHistoryRepository) Create(ctx context.Context, entry models.ProfileHistory) error {
	const query = `
		INSERT INTO profile_history (
			id, user_id, field, old_value, new_value, changed_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Field,
		entry.OldValue,
		entry.NewValue,
		entry.ChangedBy,
	)
	return err
}

func (r *ProfileHistoryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.ProfileHistory, error) {
	const query = `
		SELECT id, user_id, field, old_value, new_value, changed_by, created_at
		FROM profile_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ProfileHistory
	for rows.Next() {
		var entry models.ProfileHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Field,
			&entry.OldValue,
			&entry.NewValue,
			&entry.ChangedBy,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
