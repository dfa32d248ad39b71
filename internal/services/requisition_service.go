package services

import (
	"context"
	"fmt"
	"time"

	"github.com/procurehub/backend/internal/audit"
	"github.com/procurehub/backend/internal/models"
	"github.com/procurehub/backend/internal/repositories"
	"go.uber.org/zap"
)

type RequisitionService struct {
	requisitionRepo *repositories.RequisitionRepo
	materialRepo    *repositories.MaterialRepo
	auditWriter     *audit.Writer
	log             *zap.Logger
}

func NewRequisitionService(
	requisitionRepo *repositories.RequisitionRepo,
	materialRepo *repositories.MaterialRepo,
	auditWriter *audit.Writer,
	log *zap.Logger,
) *RequisitionService {
	return &RequisitionService{
		requisitionRepo: requisitionRepo,
		materialRepo:    materialRepo,
		auditWriter:     auditWriter,
		log:             log,
	}
}

func (s *RequisitionService) Create(ctx context.Context, userID string, req *models.Requisition) error {
	if _, err := s.materialRepo.GetByID(ctx, req.MaterialID); err != nil {
		return fmt.Errorf("material not found: %w", err)
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	now := time.Now().UTC()
	req.Status = models.RequisitionStatusDraft
	req.RequestedBy = userID
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := s.requisitionRepo.Create(ctx, req); err != nil {
		return err
	}

	s.auditWriter.Record(ctx, models.AuditEvent{
		Action:     models.AuditMaterialRequestCreated,
		UserID:     userID,
		Resource:   models.EntityRequisition,
		ResourceID: req.ID,
		Details: map[string]any{
			"materialId": req.MaterialID,
			"quantity":   req.Quantity,
		},
	})
	return nil
}

func (s *RequisitionService) GetByID(ctx context.Context, id string) (*models.Requisition, error) {
	return s.requisitionRepo.GetByID(ctx, id)
}

func (s *RequisitionService) List(ctx context.Context, f repositories.RequisitionFilter) ([]models.Requisition, error) {
	return s.requisitionRepo.List(ctx, f)
}

// Submit moves a draft requisition into review. Only the requester may
// submit their own draft.
func (s *RequisitionService) Submit(ctx context.Context, id, userID string) (*models.Requisition, error) {
	req, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("requisition not found: %w", err)
	}
	if req.RequestedBy != userID {
		return nil, fmt.Errorf("requisition not found")
	}

	if err := s.transition(ctx, req, models.RequisitionStatusSubmitted, userID, models.ActionSubmit, nil); err != nil {
		return nil, err
	}
	return req, nil
}

// Approve decides a submitted requisition.
func (s *RequisitionService) Approve(ctx context.Context, id, deciderID string) (*models.Requisition, error) {
	req, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("requisition not found: %w", err)
	}

	req.DecidedBy = deciderID
	details := map[string]any{"requestedBy": req.RequestedBy}
	if err := s.transition(ctx, req, models.RequisitionStatusApproved, deciderID, models.AuditMaterialRequestApproved, details); err != nil {
		return nil, err
	}
	return req, nil
}

// Reject decides a submitted requisition with a reason.
func (s *RequisitionService) Reject(ctx context.Context, id, deciderID, reason string) (*models.Requisition, error) {
	req, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("requisition not found: %w", err)
	}

	req.DecidedBy = deciderID
	req.Reason = reason
	details := map[string]any{"requestedBy": req.RequestedBy, "reason": reason}
	if err := s.transition(ctx, req, models.RequisitionStatusRejected, deciderID, models.AuditMaterialRequestRejected, details); err != nil {
		return nil, err
	}
	return req, nil
}

// Cancel withdraws a draft or submitted requisition.
func (s *RequisitionService) Cancel(ctx context.Context, id, userID string) (*models.Requisition, error) {
	req, err := s.requisitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("requisition not found: %w", err)
	}
	if req.RequestedBy != userID {
		return nil, fmt.Errorf("requisition not found")
	}

	if err := s.transition(ctx, req, models.RequisitionStatusCancelled, userID, models.ActionCancel, nil); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequisitionService) transition(ctx context.Context, req *models.Requisition, to, userID, action string, details map[string]any) error {
	from := req.Status
	if !models.IsValidRequisitionTransition(from, to) {
		return fmt.Errorf("invalid status transition %s -> %s", from, to)
	}

	req.Status = to
	req.UpdatedAt = time.Now().UTC()
	if err := s.requisitionRepo.Update(ctx, req); err != nil {
		return err
	}

	if details == nil {
		details = map[string]any{}
	}
	details["fromStatus"] = from
	details["toStatus"] = to

	s.auditWriter.Record(ctx, models.AuditEvent{
		Action:     action,
		UserID:     userID,
		Resource:   models.EntityRequisition,
		ResourceID: req.ID,
		Details:    details,
	})
	return nil
}
