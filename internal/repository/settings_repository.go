package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (models.SiteSetting, error) {
	const query = `SELECT key, value, updated_at FROM site_settings WHERE key = $1`
	row := r.pool.QueryRow(ctx, query, key)
	var setting models.SiteSetting
	if err := row.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SiteSetting{}, ErrNotFound
		}
		return models.SiteSetting{}, err
	}
	return setting, nil
}

func (r *SettingsRepository) GetAll(ctx context.Context) ([]models.SiteSetting, error) {
	const query = `SELECT key, value, updated_at FROM site_settings ORDER BY key ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []models.SiteSetting
	for rows.Next() {
		var setting models.SiteSetting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (r *SettingsRepository) Upsert(ctx context.Context, setting models.SiteSetting) error {
	const query = `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, setting.Key, setting.Value)
	return err
}
