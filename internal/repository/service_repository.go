package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

const serviceColumns = `id, title, slug, summary, body, icon, image, featured, status,
	sort_order, created_at, updated_at`

func scanService(row pgx.Row) (models.Service, error) {
	var svc models.Service
	if err := row.Scan(
		&svc.ID,
		&svc.Title,
		&svc.Slug,
		&svc.Summary,
		&svc.Body,
		&svc.Icon,
		&svc.Image,
		&svc.Featured,
		&svc.Status,
		&svc.SortOrder,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Service{}, ErrNotFound
		}
		return models.Service{}, err
	}
	return svc, nil
}

func (r *ServiceRepository) Create(ctx context.Context, svc models.Service) error {
	const query = `
		INSERT INTO services (
			id, title, slug, summary, body, icon, image, featured, status, sort_order, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		svc.ID,
		svc.Title,
		svc.Slug,
		svc.Summary,
		svc.Body,
		svc.Icon,
		svc.Image,
		svc.Featured,
		svc.Status,
		svc.SortOrder,
	)
	return mapWriteError(err)
}

func (r *ServiceRepository) Update(ctx context.Context, svc models.Service) error {
	const query = `
		UPDATE services SET
			title = $2, slug = $3, summary = $4, body = $5, icon = $6, image = $7,
			featured = $8, status = $9, sort_order = $10, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		svc.ID,
		svc.Title,
		svc.Slug,
		svc.Summary,
		svc.Body,
		svc.Icon,
		svc.Image,
		svc.Featured,
		svc.Status,
		svc.SortOrder,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM services WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (models.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return scanService(r.pool.QueryRow(ctx, query, id))
}

func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (models.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services WHERE slug = $1`
	return scanService(r.pool.QueryRow(ctx, query, slug))
}

func (r *ServiceRepository) List(ctx context.Context, status models.ServiceStatus, limit, offset int) ([]models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
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

	var services []models.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM services WHERE slug = $1 AND id <> $2)`
	row := r.pool.QueryRow(ctx, query, slug, excludeID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ServiceRepository) SetStatus(ctx context.Context, id string, status models.ServiceStatus) error {
	const query = `UPDATE services SET status = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
