package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chantierpro/api/internal/models"
)

func TestAdminHasEveryPermission(t *testing.T) {
	all := []string{
		PermProjectsCreate, PermProjectsUpdate, PermProjectsDelete,
		PermServicesCreate, PermServicesUpdate, PermServicesDelete,
		PermBlogCreate, PermBlogUpdate, PermBlogDelete,
		PermTestimonialsManage, PermFAQManage,
		PermMediaUpload, PermMediaDelete,
		PermHomeContentUpdate, PermPagesManage, PermSettingsManage,
		PermContactsManage, PermNewsletterManage, PermUsersManage,
	}
	for _, perm := range all {
		assert.True(t, HasPermission(models.UserRoleAdmin, perm), perm)
	}
}

func TestEditorPermissions(t *testing.T) {
	granted := []string{
		PermProjectsCreate,
		PermBlogDelete,
		PermMediaUpload,
		PermContactsManage,
	}
	for _, perm := range granted {
		assert.True(t, HasPermission(models.UserRoleEditor, perm), perm)
	}

	denied := []string{
		PermProjectsDelete,
		PermServicesDelete,
		PermMediaDelete,
		PermSettingsManage,
		PermNewsletterManage,
		PermUsersManage,
	}
	for _, perm := range denied {
		assert.False(t, HasPermission(models.UserRoleEditor, perm), perm)
	}
}

func TestRegularUserHasNoPermissions(t *testing.T) {
	assert.Empty(t, PermissionsFor(models.UserRoleUser))
	assert.False(t, HasPermission(models.UserRoleUser, PermProjectsCreate))
	assert.False(t, HasPermission(models.UserRoleUser, PermUsersManage))
}

func TestPermissionsForReturnsCopy(t *testing.T) {
	perms := PermissionsFor(models.UserRoleEditor)
	assert.NotEmpty(t, perms)

	perms[0] = "tampered"
	assert.NotContains(t, PermissionsFor(models.UserRoleEditor), "tampered")
}

func TestUnknownRole(t *testing.T) {
	assert.Nil(t, PermissionsFor(models.UserRole("ghost")))
	assert.False(t, HasPermission(models.UserRole("ghost"), PermProjectsCreate))
}
