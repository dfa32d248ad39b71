package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/procurehub/backend/internal/audit"
	"github.com/procurehub/backend/internal/authz"
	"github.com/procurehub/backend/internal/config"
	"github.com/procurehub/backend/internal/http/handlers"
	"github.com/procurehub/backend/internal/middleware"
	"github.com/procurehub/backend/internal/models"
	"github.com/procurehub/backend/internal/rbac"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authorizer *authz.Authorizer,
	auditWriter *audit.Writer,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	materialHandler *handlers.MaterialHandler,
	requisitionHandler *handlers.RequisitionHandler,
	auditHandler *handlers.AuditHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	if rdb != nil {
		api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))
	}

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", userHandler.GetMe)

	// Admin management
	protected.Put("/users/:uid/admin",
		middleware.RequireAdmin(authorizer, auditWriter, models.ActionUpdate, "user_admin_status"),
		userHandler.SetAdminStatus)

	// Materials
	protected.Get("/materials", materialHandler.List)
	protected.Get("/materials/:id", materialHandler.Get)
	protected.Post("/materials",
		middleware.RequirePermission(authorizer, auditWriter, models.ActionCreate, models.EntityMaterial, rbac.PermMaterialCreate),
		materialHandler.Create)
	protected.Put("/materials/:id",
		middleware.RequirePermission(authorizer, auditWriter, models.ActionUpdate, models.EntityMaterial, rbac.PermMaterialUpdate),
		materialHandler.Update)
	protected.Delete("/materials/:id",
		middleware.RequirePermission(authorizer, auditWriter, models.ActionDelete, models.EntityMaterial, rbac.PermMaterialDelete),
		materialHandler.Delete)

	// Requisitions
	protected.Get("/requisitions", requisitionHandler.List)
	protected.Get("/requisitions/:id", requisitionHandler.Get)
	protected.Post("/requisitions",
		middleware.RequirePermission(authorizer, auditWriter, models.ActionCreate, models.EntityRequisition, rbac.PermRequisitionCreate),
		requisitionHandler.Create)
	protected.Post("/requisitions/:id/submit",
		middleware.RequirePermission(authorizer, auditWriter, models.ActionSubmit, models.EntityRequisition, rbac.PermRequisitionSubmit),
		requisitionHandler.Submit)
	protected.Post("/requisitions/:id/approve",
		middleware.RequirePermission(authorizer, auditWriter, models.ActionApprove, models.EntityRequisition, rbac.PermRequisitionApprove),
		requisitionHandler.Approve)
	protected.Post("/requisitions/:id/reject",
		middleware.RequirePermission(authorizer, auditWriter, models.ActionReject, models.EntityRequisition, rbac.PermRequisitionReject),
		requisitionHandler.Reject)
	protected.Post("/requisitions/:id/cancel", requisitionHandler.Cancel)

	// Audit log (compliance review, admin only)
	protected.Get("/audit-logs",
		middleware.RequireAdmin(authorizer, auditWriter, "read", "audit_logs"),
		auditHandler.List)

	// WebSocket audit stream
	app.Use("/ws/audit", handlers.WSUpgradeMiddleware())
	app.Get("/ws/audit", websocket.New(wsHub.HandleWS))
}
