package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type HomeContentRepository struct {
	pool *pgxpool.Pool
}

func NewHomeContentRepository(pool *pgxpool.Pool) *HomeContentRepository {
	return &HomeContentRepository{pool: pool}
}

func (r *HomeContentRepository) GetByName(ctx context.Context, name string) (models.HomeSection, error) {
	const query = `
		SELECT id, name, content, active, updated_at
		FROM home_sections WHERE name = $1
	`
	row := r.pool.QueryRow(ctx, query, name)
	var section models.HomeSection
	if err := row.Scan(&section.ID, &section.Name, &section.Content, &section.Active, &section.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.HomeSection{}, ErrNotFound
		}
		return models.HomeSection{}, err
	}
	return section, nil
}

func (r *HomeContentRepository) ListActive(ctx context.Context) ([]models.HomeSection, error) {
	const query = `
		SELECT id, name, content, active, updated_at
		FROM home_sections
		WHERE active = TRUE
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []models.HomeSection
	for rows.Next() {
		var section models.HomeSection
		if err := rows.Scan(&section.ID, &section.Name, &section.Content, &section.Active, &section.UpdatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

func (r *HomeContentRepository) Upsert(ctx context.Context, section models.HomeSection) error {
	const query = `
		INSERT INTO home_sections (
			id, name, content, active, updated_at
		) VALUES (
			$1, $2, $3, $4, NOW()
		)
		ON CONFLICT (name)
		DO UPDATE SET
			content = EXCLUDED.content,
			active = EXCLUDED.active,
			updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, section.ID, section.Name, section.Content, section.Active)
	return err
}
