package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type PageRepository struct {
	pool *pgxpool.Pool
}

func NewPageRepository(pool *pgxpool.Pool) *PageRepository {
	return &PageRepository{pool: pool}
}

const pageColumns = `id, title, slug, body, status, created_at, updated_at`

func scanPage(row pgx.Row) (models.StaticPage, error) {
	var page models.StaticPage
	if err := row.Scan(
		&page.ID,
		&page.Title,
		&page.Slug,
		&page.Body,
		&page.Status,
		&page.CreatedAt,
		&page.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.StaticPage{}, ErrNotFound
		}
		return models.StaticPage{}, err
	}
	return page, nil
}

func (r *PageRepository) Create(ctx context.Context, page models.StaticPage) error {
	const query = `
		INSERT INTO static_pages (
			id, title, slug, body, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW(), NOW()
		)
	`
	_, err := r.pool.Exec(ctx, query, page.ID, page.Title, page.Slug, page.Body, page.Status)
	return mapWriteError(err)
}

func (r *PageRepository) Update(ctx context.Context, page models.StaticPage) error {
	const query = `
		UPDATE static_pages SET
			title = $2, slug = $3, body = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, page.ID, page.Title, page.Slug, page.Body, page.Status)
	if err != nil {
		return mapWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM static_pages WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PageRepository) GetByID(ctx context.Context, id string) (models.StaticPage, error) {
	const query = `SELECT ` + pageColumns + ` FROM static_pages WHERE id = $1`
	return scanPage(r.pool.QueryRow(ctx, query, id))
}

func (r *PageRepository) GetBySlug(ctx context.Context, slug string) (models.StaticPage, error) {
	const query = `SELECT ` + pageColumns + ` FROM static_pages WHERE slug = $1`
	return scanPage(r.pool.QueryRow(ctx, query, slug))
}

func (r *PageRepository) List(ctx context.Context, status models.PublishStatus) ([]models.StaticPage, error) {
	query := `SELECT ` + pageColumns + ` FROM static_pages`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY title ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.StaticPage
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

func (r *PageRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM static_pages WHERE slug = $1 AND id <> $2)`
	row := r.pool.QueryRow(ctx, query, slug, excludeID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
