package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/http/dto"
	"github.com/procurehub/backend/internal/middleware"
	"github.com/procurehub/backend/internal/models"
	"github.com/procurehub/backend/internal/services"
	"go.uber.org/zap"
)

type MaterialHandler struct {
	service *services.MaterialService
	log     *zap.Logger
}

func NewMaterialHandler(service *services.MaterialService, log *zap.Logger) *MaterialHandler {
	return &MaterialHandler{service: service, log: log}
}

func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var req dto.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.SKU == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "sku and name are required"})
	}

	m := models.Material{
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		VendorID:  req.VendorID,
	}
	p := middleware.GetPrincipal(c)
	if err := h.service.Create(c.Context(), p.UID, &m); err != nil {
		h.log.Error("material create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	m, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "material not found"})
		}
		h.log.Error("material get failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(m)
}

func (h *MaterialHandler) List(c *fiber.Ctx) error {
	limit := int64(50)
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 1 && n <= 100 {
			limit = n
		}
	}

	materials, err := h.service.List(c.Context(), c.Query("category"), limit)
	if err != nil {
		if errors.Is(err, docstore.ErrDisabled) {
			return c.JSON([]models.Material{})
		}
		h.log.Error("material list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	if materials == nil {
		materials = []models.Material{}
	}
	return c.JSON(materials)
}

func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var req dto.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	m := models.Material{
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		VendorID:  req.VendorID,
	}
	p := middleware.GetPrincipal(c)
	if err := h.service.Update(c.Context(), c.Params("id"), p.UID, &m); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "material not found"})
		}
		h.log.Error("material update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(m)
}

func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	if err := h.service.Delete(c.Context(), c.Params("id"), p.UID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "material not found"})
		}
		h.log.Error("material delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
