package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/procurehub/backend/internal/auth"
	"github.com/procurehub/backend/internal/authz"
	"github.com/procurehub/backend/internal/config"
	"go.uber.org/zap"
)

const (
	CtxUID         = "uid"
	CtxEmail       = "email"
	CtxDisplayName = "display_name"
	CtxRole        = "role"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxUID, claims.UID)
		c.Locals(CtxEmail, claims.Email)
		c.Locals(CtxDisplayName, claims.DisplayName)
		c.Locals(CtxRole, claims.Role)

		return c.Next()
	}
}

// GetPrincipal rebuilds the acting principal from request locals. Zero
// values mean the request was not authenticated.
func GetPrincipal(c *fiber.Ctx) authz.Principal {
	uid, _ := c.Locals(CtxUID).(string)
	email, _ := c.Locals(CtxEmail).(string)
	name, _ := c.Locals(CtxDisplayName).(string)
	return authz.Principal{UID: uid, Email: email, DisplayName: name}
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}
