package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/procurehub/backend/internal/audit"
	"github.com/procurehub/backend/internal/auth"
	"github.com/procurehub/backend/internal/authz"
	"github.com/procurehub/backend/internal/config"
	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/http/dto"
	"github.com/procurehub/backend/internal/middleware"
	"github.com/procurehub/backend/internal/models"
	"github.com/procurehub/backend/internal/rbac"
	"github.com/procurehub/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	credentialsRepo *repositories.CredentialsRepo
	authorizer      *authz.Authorizer
	auditWriter     *audit.Writer
	cfg             *config.Config
	log             *zap.Logger
}

func NewAuthHandler(
	credentialsRepo *repositories.CredentialsRepo,
	authorizer *authz.Authorizer,
	auditWriter *audit.Writer,
	cfg *config.Config,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		credentialsRepo: credentialsRepo,
		authorizer:      authorizer,
		auditWriter:     auditWriter,
		cfg:             cfg,
		log:             log,
	}
}

var registerRoles = map[string]bool{
	rbac.RoleViewer:   true,
	rbac.RoleBuyer:    true,
	rbac.RoleApprover: true,
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "valid email is required"})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "password must be at least 8 characters"})
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleViewer
	}
	if !registerRoles[role] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid role"})
	}

	if _, err := h.credentialsRepo.GetByEmail(c.Context(), email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "email already registered"})
	} else if !errors.Is(err, docstore.ErrNotFound) && !errors.Is(err, docstore.ErrDisabled) {
		h.log.Error("credential lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 14)
	if err != nil {
		h.log.Error("password hash failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	cred := models.Credential{
		UID:          uuid.New().String(),
		Email:        email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := h.credentialsRepo.Put(c.Context(), cred); err != nil {
		h.log.Error("credential store failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	principal := authz.Principal{UID: cred.UID, Email: email, DisplayName: req.DisplayName}
	profile, err := h.authorizer.EnsureProfile(c.Context(), principal, false)
	if err != nil {
		h.log.Warn("profile creation failed on register", zap.String("uid", cred.UID), zap.Error(err))
		profile = &models.UserProfile{UID: cred.UID, Email: email, DisplayName: req.DisplayName}
	}

	h.auditWriter.Record(c.Context(), models.AuditEvent{
		Action:    models.AuditUserRegistered,
		UserID:    cred.UID,
		Details:   map[string]any{"email": email, "role": role},
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, cred.UID, email, req.DisplayName, role, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Token: token, Profile: *profile, Role: role})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	cred, err := h.credentialsRepo.GetByEmail(c.Context(), email)
	if err != nil {
		h.recordFailedLogin(c, "", email, "unknown email")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid credentials"})
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)) != nil {
		h.recordFailedLogin(c, cred.UID, email, "wrong password")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid credentials"})
	}

	principal := authz.Principal{UID: cred.UID, Email: cred.Email, DisplayName: cred.DisplayName}
	profile, err := h.authorizer.EnsureProfile(c.Context(), principal, false)
	if err != nil {
		h.log.Warn("profile refresh failed on login", zap.String("uid", cred.UID), zap.Error(err))
		profile = &models.UserProfile{UID: cred.UID, Email: cred.Email, DisplayName: cred.DisplayName}
	}

	h.auditWriter.Record(c.Context(), models.AuditEvent{
		Action:    models.AuditUserLogin,
		UserID:    cred.UID,
		Details:   map[string]any{"email": email},
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, cred.UID, cred.Email, cred.DisplayName, cred.Role, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.AuthResponse{Token: token, Profile: *profile, Role: cred.Role})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	h.auditWriter.Record(c.Context(), models.AuditEvent{
		Action:    models.AuditUserLogout,
		UserID:    p.UID,
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AuthHandler) recordFailedLogin(c *fiber.Ctx, uid, email, reason string) {
	h.auditWriter.Record(c.Context(), models.AuditEvent{
		Action:    models.AuditFailedLogin,
		UserID:    uid,
		Details:   map[string]any{"email": email, "reason": reason},
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
	})
}
