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

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, title, slug, excerpt, body, cover_image, author_id, tags, status,
	published_at, created_at, updated_at`

func scanBlogPost(row pgx.Row) (models.BlogPost, error) {
	var post models.BlogPost
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Body,
		&post.CoverImage,
		&post.AuthorID,
		&post.Tags,
		&post.Status,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BlogPost{}, ErrNotFound
		}
		return models.BlogPost{}, err
	}
	return post, nil
}

func (r *BlogRepository) Create(ctx context.Context, post models.BlogPost) error {
	const query = `
		INSERT INTO blog_posts (
			id, title, slug, excerpt, body, cover_image, author_id, tags, status,
			published_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Body,
		post.CoverImage,
		post.AuthorID,
		post.Tags,
		post.Status,
		post.PublishedAt,
	)
	return mapWriteError(err)
}

func (r *BlogRepository) Update(ctx context.Context, post models.BlogPost) error {
	const query = `
		UPDATE blog_posts SET
			title = $2, slug = $3, excerpt = $4, body = $5, cover_image = $6,
			tags = $7, status = $8, published_at = $9, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Body,
		post.CoverImage,
		post.Tags,
		post.Status,
		post.PublishedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM blog_posts WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (models.BlogPost, error) {
	const query = `SELECT ` + blogColumns + ` FROM blog_posts WHERE id = $1`
	return scanBlogPost(r.pool.QueryRow(ctx, query, id))
}

func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	const query = `SELECT ` + blogColumns + ` FROM blog_posts WHERE slug = $1`
	return scanBlogPost(r.pool.QueryRow(ctx, query, slug))
}

type BlogFilter struct {
	Status models.PublishStatus
	Tag    string
	Limit  int
	Offset int
}

func (r *BlogRepository) List(ctx context.Context, filter BlogFilter) ([]models.BlogPost, error) {
	var (
		conds []string
		args  []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, fmt.Sprintf("tags ? $%d", len(args)))
	}

	query := `SELECT ` + blogColumns + ` FROM blog_posts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY published_at DESC NULLS LAST, created_at DESC"

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *BlogRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`
	row := r.pool.QueryRow(ctx, query, slug, excludeID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
