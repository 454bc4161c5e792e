package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/slugify"
)

type slugChecker func(ctx context.Context, slug string, excludeID string) (bool, error)

// resolveSlug derives the slug and enforces per-resource uniqueness. On
// collision the request is rejected; titles are never auto-suffixed, the
// admin picks a new one.
func (h HandlerSet) resolveSlug(c *gin.Context, title string, excludeID string, exists slugChecker) (string, bool) {
	slug := slugify.Slugify(title)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_title"})
		return "", false
	}

	taken, err := exists(c.Request.Context(), slug, excludeID)
	if err != nil {
		h.fail(c, err)
		return "", false
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate_title"})
		return "", false
	}
	return slug, true
}
