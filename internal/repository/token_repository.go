package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chantierpro/api/internal/models"
)

// TokenRepository persists single-use password-reset and email-verification
// tokens. Raw token values are never stored, only sha256 hashes.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) CreatePasswordReset(ctx context.Context, token models.PasswordResetToken) error {
	const query = `
		INSERT INTO password_reset_tokens (
			id, email, token_hash, expires_at, created_at
		) VALUES (
			$1, $2, $3, $4, NOW()
		)
	`
	_, err := r.pool.Exec(ctx, query, token.ID, token.Email, token.TokenHash, token.ExpiresAt)
	return err
}

func (r *TokenRepository) FindPasswordResetByHash(ctx context.Context, tokenHash []byte) (models.PasswordResetToken, error) {
	const query = `
		SELECT id, email, token_hash, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1
	`

	row := r.pool.QueryRow(ctx, query, tokenHash)
	var token models.PasswordResetToken
	if err := row.Scan(
		&token.ID,
		&token.Email,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PasswordResetToken{}, ErrTokenNotFound
		}
		return models.PasswordResetToken{}, err
	}
	return token, nil
}

// MarkPasswordResetUsed consumes a reset token. The used_at guard in the WHERE
// clause makes consumption atomic: the second caller sees ErrTokenNotFound.
func (r *TokenRepository) MarkPasswordResetUsed(ctx context.Context, id string) error {
	const query = `
		UPDATE password_reset_tokens SET used_at = NOW()
		WHERE id = $1 AND used_at IS NULL
	`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *TokenRepository) CreateEmailVerification(ctx context.Context, token models.EmailVerificationToken) error {
	const query = `
		INSERT INTO email_verification_tokens (
			id, user_id, token_hash, expires_at, created_at
		) VALUES (
			$1, $2, $3, $4, NOW()
		)
	`
	_, err := r.pool.Exec(ctx, query, token.ID, token.UserID, token.TokenHash, token.ExpiresAt)
	return err
}

func (r *TokenRepository) FindEmailVerificationByHash(ctx context.Context, tokenHash []byte) (models.EmailVerificationToken, error) {
	const query = `
		SELECT id, user_id, token_hash, expires_at, verified_at, created_at
		FROM email_verification_tokens
		WHERE token_hash = $1
	`

	row := r.pool.QueryRow(ctx, query, tokenHash)
	var token models.EmailVerificationToken
	if err := row.Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.VerifiedAt,
		&token.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.EmailVerificationToken{}, ErrTokenNotFound
		}
		return models.EmailVerificationToken{}, err
	}
	return token, nil
}

func (r *TokenRepository) MarkEmailVerified(ctx context.Context, id string) error {
	const query = `
		UPDATE email_verification_tokens SET verified_at = NOW()
		WHERE id = $1 AND verified_at IS NULL
	`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *TokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	// Consumed rows are dead weight too; they are one-shot by construction.
	const resetQuery = `DELETE FROM password_reset_tokens WHERE expires_at < $1 OR used_at IS NOT NULL`
	const verifyQuery = `DELETE FROM email_verification_tokens WHERE expires_at < $1 OR verified_at IS NOT NULL`

	var total int64
	cmd, err := r.pool.Exec(ctx, resetQuery, cutoff)
	if err != nil {
		return 0, err
	}
	total += cmd.RowsAffected()

	cmd, err = r.pool.Exec(ctx, verifyQuery, cutoff)
	if err != nil {
		return total, err
	}
	total += cmd.RowsAffected()
	return total, nil
}
