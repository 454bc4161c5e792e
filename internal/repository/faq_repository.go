package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type FAQRepository struct {
	pool *pgxpool.Pool
}

func NewFAQRepository(pool *pgxpool.Pool) *FAQRepository {
	return &FAQRepository{pool: pool}
}

const faqColumns = `id, question, answer, category, status, sort_order, created_at, updated_at`

func scanFAQItem(row pgx.Row) (models.FAQItem, error) {
	var item models.FAQItem
	if err := row.Scan(
		&item.ID,
		&item.Question,
		&item.Answer,
		&item.Category,
		&item.Status,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FAQItem{}, ErrNotFound
		}
		return models.FAQItem{}, err
	}
	return item, nil
}

func (r *FAQRepository) Create(ctx context.Context, item models.FAQItem) error {
	const query = `
		INSERT INTO faq_items (
			id, question, answer, category, status, sort_order, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Question,
		item.Answer,
		item.Category,
		item.Status,
		item.SortOrder,
	)
	return err
}

func (r *FAQRepository) Update(ctx context.Context, item models.FAQItem) error {
	const query = `
		UPDATE faq_items SET
			question = $2, answer = $3, category = $4, status = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Question,
		item.Answer,
		item.Category,
		item.Status,
		item.SortOrder,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FAQRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM faq_items WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FAQRepository) GetByID(ctx context.Context, id string) (models.FAQItem, error) {
	const query = `SELECT ` + faqColumns + ` FROM faq_items WHERE id = $1`
	return scanFAQItem(r.pool.QueryRow(ctx, query, id))
}

func (r *FAQRepository) List(ctx context.Context, status models.PublishStatus, category string) ([]models.FAQItem, error) {
	query := `SELECT ` + faqColumns + ` FROM faq_items WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $1`
	}
	if category != "" {
		args = append(args, category)
		if len(args) == 1 {
			query += ` AND category = $1`
		} else {
			query += ` AND category = $2`
		}
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.FAQItem
	for rows.Next() {
		item, err := scanFAQItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
