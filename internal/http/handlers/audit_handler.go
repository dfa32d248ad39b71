package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/procurehub/backend/internal/audit"
	"github.com/procurehub/backend/internal/http/dto"
	"github.com/procurehub/backend/internal/models"
	"go.uber.org/zap"
)

type AuditHandler struct {
	engine *audit.Engine
	log    *zap.Logger
}

func NewAuditHandler(engine *audit.Engine, log *zap.Logger) *AuditHandler {
	return &AuditHandler{engine: engine, log: log}
}

// List answers compliance queries over the audit log. Filters combine by
// AND; results are newest-first.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter := models.AuditLogFilter{
		UserID:   c.Query("userId"),
		Action:   c.Query("action"),
		Resource: c.Query("resource"),
	}

	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid startDate"})
		}
		filter.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid endDate"})
		}
		filter.EndDate = &t
	}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 || n > int64(audit.DefaultQueryLimit) {
			n = audit.DefaultQueryLimit
		}
		filter.Limit = n
	}

	events := h.engine.Query(c.Context(), filter)
	return c.JSON(dto.AuditLogResponse{Events: events, Count: len(events)})
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
