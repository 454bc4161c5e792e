package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type MediaRepository struct {
	pool *pgxpool.Pool
}

func NewMediaRepository(pool *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{pool: pool}
}

const mediaColumns = `id, file_name, object_key, bucket, mime, size_bytes, uploaded_by, created_at`

func scanMedia(row pgx.Row) (models.Media, error) {
	var media models.Media
	if err := row.Scan(
		&media.ID,
		&media.FileName,
		&media.ObjectKey,
		&media.Bucket,
		&media.MIME,
		&media.SizeBytes,
		&media.UploadedBy,
		&media.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Media{}, ErrNotFound
		}
		return models.Media{}, err
	}
	return media, nil
}

func (r *MediaRepository) Create(ctx context.Context, media models.Media) error {
	const query = `
		INSERT INTO media (
			id, file_name, object_key, bucket, mime, size_bytes, uploaded_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		media.ID,
		media.FileName,
		media.ObjectKey,
		media.Bucket,
		media.MIME,
		media.SizeBytes,
		media.UploadedBy,
	)
	return err
}

func (r *MediaRepository) GetByID(ctx context.Context, id string) (models.Media, error) {
	const query = `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`
	return scanMedia(r.pool.QueryRow(ctx, query, id))
}

func (r *MediaRepository) List(ctx context.Context, limit, offset int) ([]models.Media, error) {
	const query = `SELECT ` + mediaColumns + ` FROM media ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, media)
	}
	return items, rows.Err()
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM media WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
