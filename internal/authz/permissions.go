package authz

import "chantierpro/api/internal/models"

// Permission strings are "<resource>.<action>". The table is static; it is
// never mutated at runtime.
const (
	PermProjectsCreate     = "projects.create"
	PermProjectsUpdate     = "projects.update"
	PermProjectsDelete     = "projects.delete"
	PermServicesCreate     = "services.create"
	PermServicesUpdate     = "services.update"
	PermServicesDelete     = "services.delete"
	PermBlogCreate         = "blog.create"
	PermBlogUpdate         = "blog.update"
	PermBlogDelete         = "blog.delete"
	PermTestimonialsManage = "testimonials.manage"
	PermFAQManage          = "faq.manage"
	PermMediaUpload        = "media.upload"
	PermMediaDelete        = "media.delete"
	PermHomeContentUpdate  = "home-content.update"
	PermPagesManage        = "pages.manage"
	PermSettingsManage     = "settings.manage"
	PermContactsManage     = "contacts.manage"
	PermNewsletterManage   = "newsletter.manage"
	PermUsersManage        = "users.manage"
)

var rolePermissions = map[models.UserRole][]string{
	models.UserRoleEditor: {
		PermProjectsCreate,
		PermProjectsUpdate,
		PermServicesCreate,
		PermServicesUpdate,
		PermBlogCreate,
		PermBlogUpdate,
		PermBlogDelete,
		PermTestimonialsManage,
		PermFAQManage,
		PermMediaUpload,
		PermHomeContentUpdate,
		PermPagesManage,
		PermContactsManage,
	},
	models.UserRoleUser: {},
}

// PermissionsFor returns the permission set granted to a role. Admins are
// handled by HasPermission as an implicit grant, not by enumeration here.
func PermissionsFor(role models.UserRole) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

func HasPermission(role models.UserRole, permission string) bool {
	if role == models.UserRoleAdmin {
		return true
	}
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
