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

type MaterialService struct {
	materialRepo *repositories.MaterialRepo
	auditWriter  *audit.Writer
	log          *zap.Logger
}

func NewMaterialService(
	materialRepo *repositories.MaterialRepo,
	auditWriter *audit.Writer,
	log *zap.Logger,
) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		auditWriter:  auditWriter,
		log:          log,
	}
}

func (s *MaterialService) Create(ctx context.Context, userID string, m *models.Material) error {
	now := time.Now().UTC()
	m.CreatedBy = userID
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.materialRepo.Create(ctx, m); err != nil {
		return err
	}

	s.auditWriter.Record(ctx, models.AuditEvent{
		Action:     models.AuditMaterialCreated,
		UserID:     userID,
		Resource:   models.EntityMaterial,
		ResourceID: m.ID,
		Details: map[string]any{
			"sku":  m.SKU,
			"name": m.Name,
		},
	})
	return nil
}

func (s *MaterialService) GetByID(ctx context.Context, id string) (*models.Material, error) {
	return s.materialRepo.GetByID(ctx, id)
}

func (s *MaterialService) List(ctx context.Context, category string, limit int64) ([]models.Material, error) {
	return s.materialRepo.List(ctx, category, limit)
}

func (s *MaterialService) Update(ctx context.Context, id, userID string, m *models.Material) error {
	existing, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("material not found: %w", err)
	}

	m.ID = id
	m.CreatedBy = existing.CreatedBy
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now().UTC()
	if m.SKU == "" {
		m.SKU = existing.SKU
	}
	if m.Name == "" {
		m.Name = existing.Name
	}

	if err := s.materialRepo.Update(ctx, m); err != nil {
		return err
	}

	s.auditWriter.Record(ctx, models.AuditEvent{
		Action:     models.AuditMaterialUpdated,
		UserID:     userID,
		Resource:   models.EntityMaterial,
		ResourceID: id,
		Details: map[string]any{
			"sku":  m.SKU,
			"name": m.Name,
		},
	})
	return nil
}

func (s *MaterialService) Delete(ctx context.Context, id, userID string) error {
	existing, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("material not found: %w", err)
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditWriter.Record(ctx, models.AuditEvent{
		Action:     models.AuditMaterialDeleted,
		UserID:     userID,
		Resource:   models.EntityMaterial,
		ResourceID: id,
		Details: map[string]any{
			"sku":  existing.SKU,
			"name": existing.Name,
		},
	})
	return nil
}
