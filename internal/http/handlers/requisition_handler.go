package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/http/dto"
	"github.com/procurehub/backend/internal/middleware"
	"github.com/procurehub/backend/internal/models"
	"github.com/procurehub/backend/internal/repositories"
	"github.com/procurehub/backend/internal/services"
	"go.uber.org/zap"
)

type RequisitionHandler struct {
	service *services.RequisitionService
	log     *zap.Logger
}

func NewRequisitionHandler(service *services.RequisitionService, log *zap.Logger) *RequisitionHandler {
	return &RequisitionHandler{service: service, log: log}
}

func (h *RequisitionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRequisitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.MaterialID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "material_id is required"})
	}

	r := models.Requisition{
		MaterialID: req.MaterialID,
		Quantity:   req.Quantity,
		Reason:     req.Reason,
	}
	p := middleware.GetPrincipal(c)
	if err := h.service.Create(c.Context(), p.UID, &r); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "material not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *RequisitionHandler) Get(c *fiber.Ctx) error {
	r, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "requisition not found"})
		}
		h.log.Error("requisition get failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(r)
}

func (h *RequisitionHandler) List(c *fiber.Ctx) error {
	f := repositories.RequisitionFilter{
		Status: c.Query("status"),
		Limit:  50,
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 1 && n <= 100 {
			f.Limit = n
		}
	}
	if c.Query("mine") == "true" {
		f.RequestedBy = middleware.GetPrincipal(c).UID
	}

	reqs, err := h.service.List(c.Context(), f)
	if err != nil {
		if errors.Is(err, docstore.ErrDisabled) {
			return c.JSON([]models.Requisition{})
		}
		h.log.Error("requisition list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	if reqs == nil {
		reqs = []models.Requisition{}
	}
	return c.JSON(reqs)
}

func (h *RequisitionHandler) Submit(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	r, err := h.service.Submit(c.Context(), c.Params("id"), p.UID)
	if err != nil {
		return requisitionError(c, err)
	}
	return c.JSON(r)
}

func (h *RequisitionHandler) Approve(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	r, err := h.service.Approve(c.Context(), c.Params("id"), p.UID)
	if err != nil {
		return requisitionError(c, err)
	}
	return c.JSON(r)
}

func (h *RequisitionHandler) Reject(c *fiber.Ctx) error {
	var req dto.RejectRequisitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	p := middleware.GetPrincipal(c)
	r, err := h.service.Reject(c.Context(), c.Params("id"), p.UID, req.Reason)
	if err != nil {
		return requisitionError(c, err)
	}
	return c.JSON(r)
}

func (h *RequisitionHandler) Cancel(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	r, err := h.service.Cancel(c.Context(), c.Params("id"), p.UID)
	if err != nil {
		return requisitionError(c, err)
	}
	return c.JSON(r)
}

func requisitionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "requisition not found"})
	}
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
}
