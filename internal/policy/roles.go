package policy

import (
	"context"

	"github.com/groupebh/gbh-backend/internal/models"
)

// rolePermissions maps each admin role to its grants. Editors manage content
// but may not delete business entities, contact messages, or other admins.
var rolePermissions = map[string][]Permission{
	models.RoleAdmin: {PermissionSuperAdmin},
	models.RoleEditor: {
		"entity:view", "entity:list", "entity:update",
		"category:*", "product:*", "service:*", "project:*",
		"news:*", "press-release:*", "job:*", "faq:*", "partner:*",
		"testimonial:*", "statistic:*", "timeline:*", "value:*",
		"social:*", "team:*", "upload:*",
		"message:view", "message:list", "message:update",
	},
}

// rolePolicy authorizes by role name carried in the token claims.
type rolePolicy struct {
	resourceType string
}

func (p rolePolicy) Can(_ context.Context, role string, action Action, _ any) bool {
	requested := NewPermission(p.resourceType, action)
	for _, perm := range rolePermissions[role] {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}

// AdminGate builds the gate guarding every admin resource, keyed by role name.
func AdminGate() *Gate[string] {
	g := NewGate[string]()
	for _, res := range []string{
		"entity", "category", "product", "service", "project",
		"news", "press-release", "job", "faq", "partner", "testimonial",
		"statistic", "timeline", "value", "social", "team",
		"message", "upload", "admin-user",
	} {
		g.Register(res, rolePolicy{resourceType: res})
	}
	return g
}
