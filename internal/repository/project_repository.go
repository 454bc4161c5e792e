package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, title, slug, description, category, location, year, cover_image,
	gallery, featured, status, sort_order, created_at, updated_at`

func scanProject(row pgx.Row) (models.Project, error) {
	var project models.Project
	if err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Slug,
		&project.Description,
		&project.Category,
		&project.Location,
		&project.Year,
		&project.CoverImage,
		&project.Gallery,
		&project.Featured,
		&project.Status,
		&project.SortOrder,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project models.Project) error {
	const query = `
		INSERT INTO projects (
			id, title, slug, description, category, location, year, cover_image,
			gallery, featured, status, sort_order, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		project.ID,
		project.Title,
		project.Slug,
		project.Description,
		project.Category,
		project.Location,
		project.Year,
		project.CoverImage,
		project.Gallery,
		project.Featured,
		project.Status,
		project.SortOrder,
	)
	return mapWriteError(err)
}

func (r *ProjectRepository) Update(ctx context.Context, project models.Project) error {
	const query = `
		UPDATE projects SET
			title = $2, slug = $3, description = $4, category = $5, location = $6,
			year = $7, cover_image = $8, gallery = $9, featured = $10, status = $11,
			sort_order = $12, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		project.ID,
		project.Title,
		project.Slug,
		project.Description,
		project.Category,
		project.Location,
		project.Year,
		project.CoverImage,
		project.Gallery,
		project.Featured,
		project.Status,
		project.SortOrder,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM projects WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (models.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (models.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE slug = $1`
	return scanProject(r.pool.QueryRow(ctx, query, slug))
}

type ProjectFilter struct {
	Category string
	Status   models.PublishStatus
	Featured *bool
	Limit    int
	Offset   int
}

func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	var (
		conds []string
		args  []any
	)

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conds = append(conds, fmt.Sprintf("featured = $%d", len(args)))
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY sort_order ASC, created_at DESC"

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// SlugExists pre-checks slug uniqueness. excludeID skips the row being updated.
func (r *ProjectRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM projects WHERE slug = $1 AND id <> $2)`
	row := r.pool.QueryRow(ctx, query, slug, excludeID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ProjectRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	const query = `UPDATE projects SET featured = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, featured)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) SetStatus(ctx context.Context, id string, status models.PublishStatus) error {
	const query = `UPDATE projects SET status = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
