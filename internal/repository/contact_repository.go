package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

const contactColumns = `id, name, email, phone, subject, message, read_at, created_at`

func scanContact(row pgx.Row) (models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := row.Scan(
		&msg.ID,
		&msg.Name,
		&msg.Email,
		&msg.Phone,
		&msg.Subject,
		&msg.Message,
		&msg.ReadAt,
		&msg.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ContactMessage{}, ErrNotFound
		}
		return models.ContactMessage{}, err
	}
	return msg, nil
}

func (r *ContactRepository) Create(ctx context.Context, msg models.ContactMessage) error {
	const query = `
		INSERT INTO contact_messages (
			id, name, email, phone, subject, message, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Message,
	)
	return err
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (models.ContactMessage, error) {
	const query = `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = $1`
	return scanContact(r.pool.QueryRow(ctx, query, id))
}

func (r *ContactRepository) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]models.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages`
	if unreadOnly {
		query += ` WHERE read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		msg, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *ContactRepository) MarkRead(ctx context.Context, id string) error {
	const query = `UPDATE contact_messages SET read_at = NOW() WHERE id = $1 AND read_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM contact_messages WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
