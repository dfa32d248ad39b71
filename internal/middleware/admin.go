package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/procurehub/backend/internal/audit"
	"github.com/procurehub/backend/internal/authz"
	"github.com/procurehub/backend/internal/rbac"
)

// This file is the permission audit bridge: every authorization check
// made here produces exactly one PERMISSION_GRANTED or PERMISSION_DENIED
// event through the audit writer. Handlers and services must not emit
// permission events themselves.

// RequireAdmin guards a route behind the admin authorizer. action and
// resource describe what is being attempted, for the audit record.
func RequireAdmin(az *authz.Authorizer, w *audit.Writer, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if az.IsAdmin(c.Context(), p) {
			w.RecordPermissionGranted(c.Context(), p.UID, action, resource)
			return c.Next()
		}
		w.RecordPermissionDenied(c.Context(), p.UID, action, resource, "admin", GetRole(c))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
	}
}

// RequirePermission guards a route behind an rbac permission. Admins
// pass regardless of role.
func RequirePermission(az *authz.Authorizer, w *audit.Writer, action, resource, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		role := GetRole(c)

		if rbac.HasPermission(role, permission) || az.IsAdmin(c.Context(), p) {
			w.RecordPermissionGranted(c.Context(), p.UID, action, resource)
			return c.Next()
		}
		w.RecordPermissionDenied(c.Context(), p.UID, action, resource, permission, role)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
	}
}
