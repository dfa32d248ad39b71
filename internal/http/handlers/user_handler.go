package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/procurehub/backend/internal/audit"
	"github.com/procurehub/backend/internal/authz"
	"github.com/procurehub/backend/internal/http/dto"
	"github.com/procurehub/backend/internal/middleware"
	"github.com/procurehub/backend/internal/models"
	"go.uber.org/zap"
)

type UserHandler struct {
	authorizer  *authz.Authorizer
	auditWriter *audit.Writer
	log         *zap.Logger
}

func NewUserHandler(authorizer *authz.Authorizer, auditWriter *audit.Writer, log *zap.Logger) *UserHandler {
	return &UserHandler{authorizer: authorizer, auditWriter: auditWriter, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)

	profile, err := h.authorizer.EnsureProfile(c.Context(), p, false)
	if err != nil {
		h.log.Warn("profile load failed", zap.String("uid", p.UID), zap.Error(err))
		profile = &models.UserProfile{UID: p.UID, Email: p.Email, DisplayName: p.DisplayName}
	}

	return c.JSON(dto.ProfileResponse{
		Profile: *profile,
		Role:    middleware.GetRole(c),
		IsAdmin: h.authorizer.IsAdmin(c.Context(), p),
	})
}

// SetAdminStatus is the explicit grant/revoke endpoint, admin-only via
// the router. The target profile must already exist.
func (h *UserHandler) SetAdminStatus(c *fiber.Ctx) error {
	uid := c.Params("uid")
	if uid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "uid is required"})
	}

	var req dto.SetAdminStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := h.authorizer.SetAdminStatus(c.Context(), uid, req.IsAdmin); err != nil {
		if errors.Is(err, authz.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "profile not found"})
		}
		h.log.Error("set admin status failed", zap.String("uid", uid), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	actor := middleware.GetPrincipal(c)
	h.auditWriter.Record(c.Context(), models.AuditEvent{
		Action:       models.AuditRoleChanged,
		UserID:       actor.UID,
		TargetUserID: uid,
		Details:      map[string]any{"isAdmin": req.IsAdmin},
		IPAddress:    c.IP(),
		UserAgent:    c.Get("User-Agent"),
	})

	return c.JSON(dto.SuccessResponse{OK: true})
}
