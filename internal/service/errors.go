package service

import (
	"errors"

	"chantierpro/api/internal/repository"
)

var ErrUnknownSection = errors.New("unknown home section")

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrUserNotFound) ||
		errors.Is(err, repository.ErrSessionNotFound) ||
		errors.Is(err, repository.ErrTokenNotFound) ||
		errors.Is(err, repository.ErrNotFound)
}
