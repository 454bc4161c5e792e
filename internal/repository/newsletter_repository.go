package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type NewsletterRepository struct {
	pool *pgxpool.Pool
}

func NewNewsletterRepository(pool *pgxpool.Pool) *NewsletterRepository {
	return &NewsletterRepository{pool: pool}
}

// Subscribe upserts by email: a returning subscriber gets unsubscribed_at
// cleared instead of a duplicate row.
func (r *NewsletterRepository) Subscribe(ctx context.Context, sub models.NewsletterSubscriber) error {
	const query = `
		INSERT INTO newsletter_subscribers (
			id, email, subscribed_at
		) VALUES (
			$1, $2, NOW()
		)
		ON CONFLICT (email)
		DO UPDATE SET
			subscribed_at = NOW(),
			unsubscribed_at = NULL
	`
	_, err := r.pool.Exec(ctx, query, sub.ID, sub.Email)
	return err
}

func (r *NewsletterRepository) Unsubscribe(ctx context.Context, email string) error {
	const query = `
		UPDATE newsletter_subscribers SET unsubscribed_at = NOW()
		WHERE email = $1 AND unsubscribed_at IS NULL
	`
	cmd, err := r.pool.Exec(ctx, query, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NewsletterRepository) GetByEmail(ctx context.Context, email string) (models.NewsletterSubscriber, error) {
	const query = `
		SELECT id, email, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers WHERE email = $1
	`
	row := r.pool.QueryRow(ctx, query, email)
	var sub models.NewsletterSubscriber
	if err := row.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.UnsubscribedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NewsletterSubscriber{}, ErrNotFound
		}
		return models.NewsletterSubscriber{}, err
	}
	return sub, nil
}

func (r *NewsletterRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]models.NewsletterSubscriber, error) {
	query := `
		SELECT id, email, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers
	`
	if activeOnly {
		query += ` WHERE unsubscribed_at IS NULL`
	}
	query += ` ORDER BY subscribed_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.NewsletterSubscriber
	for rows.Next() {
		var sub models.NewsletterSubscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.UnsubscribedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
