package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenNotFound   = errors.New("token not found")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate record")
)

// uniqueViolation is the postgres error code raised by unique constraints.
// Pre-checks on email/slug leave a race window; the constraint is the backstop
// and its rejection maps onto the same duplicate error.
const uniqueViolation = "23505"

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
