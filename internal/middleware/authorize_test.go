package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"chantierpro/api/internal/authz"
	"chantierpro/api/internal/models"
)

func runWithUser(t *testing.T, user *models.User, guard gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/probe",
		func(c *gin.Context) {
			if user != nil {
				c.Set(ContextUser, *user)
			}
		},
		guard,
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	return w
}

func TestRequirePermissionNoUser(t *testing.T) {
	w := runWithUser(t, nil, RequirePermission(authz.PermProjectsCreate))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermissionEditorDeniedDelete(t *testing.T) {
	user := models.User{ID: "u", Role: models.UserRoleEditor}
	w := runWithUser(t, &user, RequirePermission(authz.PermProjectsDelete))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionEditorAllowedCreate(t *testing.T) {
	user := models.User{ID: "u", Role: models.UserRoleEditor}
	w := runWithUser(t, &user, RequirePermission(authz.PermProjectsCreate))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionAdminAlwaysAllowed(t *testing.T) {
	user := models.User{ID: "u", Role: models.UserRoleAdmin}
	w := runWithUser(t, &user, RequirePermission(authz.PermUsersManage))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles(t *testing.T) {
	editor := models.User{ID: "u", Role: models.UserRoleEditor}

	w := runWithUser(t, &editor, RequireRoles(models.UserRoleAdmin))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = runWithUser(t, &editor, RequireRoles(models.UserRoleAdmin, models.UserRoleEditor))
	assert.Equal(t, http.StatusOK, w.Code)
}
