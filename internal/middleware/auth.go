package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chantierpro/api/internal/config"
	"chantierpro/api/internal/models"
	"chantierpro/api/internal/security"
)

const (
	ContextUser   = "current_user"
	ContextClaims = "auth_claims"
)

type UserLoader interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

type SessionLoader interface {
	GetByID(ctx context.Context, id string) (models.Session, error)
}

// Auth is the access guard: token signature and expiry, then the session
// ledger row (revocation is consulted synchronously), then the live user
// record. A cryptographically valid token is still rejected when the account
// was disabled or suspended after issuance.
func Auth(cfg *config.AppConfig, users UserLoader, sessions SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		session, err := sessions.GetByID(c.Request.Context(), claims.SessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}
		if session.Revoked() || session.UserID != claims.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account_disabled"})
			return
		}
		if user.Status != models.UserStatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account_suspended"})
			return
		}

		c.Set(ContextClaims, *claims)
		c.Set(ContextUser, user)

		c.Next()
	}
}

// RequireAdminContext is the stricter guard variant for /admin routes: the
// token must carry the admin flag and the live user's role must be admin or
// editor.
func RequireAdminContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok || !claims.Admin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin_token_required"})
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if user.Role != models.UserRoleAdmin && user.Role != models.UserRoleEditor {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(ContextUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

func CurrentClaims(c *gin.Context) (security.AuthClaims, bool) {
	val, exists := c.Get(ContextClaims)
	if !exists {
		return security.AuthClaims{}, false
	}
	claims, ok := val.(security.AuthClaims)
	return claims, ok
}
