package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/repository"
	"chantierpro/api/internal/service"
)

// fail translates service and repository errors into the response taxonomy.
// Anything unrecognized becomes a logged 500 with a generic body.
func (h HandlerSet) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
	case errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "account_disabled"})
	case errors.Is(err, service.ErrAccountSuspended):
		c.JSON(http.StatusForbidden, gin.H{"error": "account_suspended"})
	case errors.Is(err, service.ErrBanned):
		c.JSON(http.StatusForbidden, gin.H{"error": "registration_blocked"})
	case errors.Is(err, service.ErrNotAdmin):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_taken"})
	case errors.Is(err, service.ErrTokenInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "token_invalid"})
	case errors.Is(err, service.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too_many_attempts"})
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_too_large"})
	case errors.Is(err, service.ErrUnsupportedFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported_file_type"})
	case errors.Is(err, service.ErrUnknownSection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_section"})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate_record"})
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, repository.ErrTokenNotFound),
		errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func pagination(c *gin.Context, defaultPerPage, maxPerPage int) (limit, offset int) {
	limit = defaultPerPage
	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= maxPerPage {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}
	return limit, offset
}
