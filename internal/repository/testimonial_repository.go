package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type TestimonialRepository struct {
	pool *pgxpool.Pool
}

func NewTestimonialRepository(pool *pgxpool.Pool) *TestimonialRepository {
	return &TestimonialRepository{pool: pool}
}

const testimonialColumns = `id, author_name, author_role, quote, rating, avatar_url, status,
	sort_order, created_at, updated_at`

func scanTestimonial(row pgx.Row) (models.Testimonial, error) {
	var t models.Testimonial
	if err := row.Scan(
		&t.ID,
		&t.AuthorName,
		&t.AuthorRole,
		&t.Quote,
		&t.Rating,
		&t.AvatarURL,
		&t.Status,
		&t.SortOrder,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Testimonial{}, ErrNotFound
		}
		return models.Testimonial{}, err
	}
	return t, nil
}

func (r *TestimonialRepository) Create(ctx context.Context, t models.Testimonial) error {
	const query = `
		INSERT INTO testimonials (
			id, author_name, author_role, quote, rating, avatar_url, status, sort_order, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.AuthorName,
		t.AuthorRole,
		t.Quote,
		t.Rating,
		t.AvatarURL,
		t.Status,
		t.SortOrder,
	)
	return err
}

func (r *TestimonialRepository) Update(ctx context.Context, t models.Testimonial) error {
	const query = `
		UPDATE testimonials SET
			author_name = $2, author_role = $3, quote = $4, rating = $5,
			avatar_url = $6, status = $7, sort_order = $8, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		t.ID,
		t.AuthorName,
		t.AuthorRole,
		t.Quote,
		t.Rating,
		t.AvatarURL,
		t.Status,
		t.SortOrder,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM testimonials WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TestimonialRepository) GetByID(ctx context.Context, id string) (models.Testimonial, error) {
	const query = `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = $1`
	return scanTestimonial(r.pool.QueryRow(ctx, query, id))
}

func (r *TestimonialRepository) List(ctx context.Context, status models.PublishStatus, limit, offset int) ([]models.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY sort_order ASC, created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY sort_order ASC, created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []models.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}
