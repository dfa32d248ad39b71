package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/models"
)

const requisitionsCollection = "requisitions"

type RequisitionRepo struct {
	store docstore.Store
}

func NewRequisitionRepo(store docstore.Store) *RequisitionRepo {
	return &RequisitionRepo{store: store}
}

func (r *RequisitionRepo) Create(ctx context.Context, req *models.Requisition) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	return r.store.Put(ctx, requisitionsCollection, req.ID, req.Document())
}

func (r *RequisitionRepo) GetByID(ctx context.Context, id string) (*models.Requisition, error) {
	doc, err := r.store.Get(ctx, requisitionsCollection, id)
	if err != nil {
		return nil, err
	}
	req := models.RequisitionFromDocument(id, doc)
	return &req, nil
}

func (r *RequisitionRepo) Update(ctx context.Context, req *models.Requisition) error {
	return r.store.Put(ctx, requisitionsCollection, req.ID, req.Document())
}

type RequisitionFilter struct {
	RequestedBy string
	Status      string
	Limit       int64
}

func (r *RequisitionRepo) List(ctx context.Context, f RequisitionFilter) ([]models.Requisition, error) {
	var preds []docstore.Predicate
	if f.RequestedBy != "" {
		preds = append(preds, docstore.Predicate{Field: "requestedBy", Op: docstore.OpEqual, Value: f.RequestedBy})
	}
	if f.Status != "" {
		preds = append(preds, docstore.Predicate{Field: "status", Op: docstore.OpEqual, Value: f.Status})
	}
	docs, err := r.store.Query(ctx, requisitionsCollection, preds, "createdAt", true, f.Limit)
	if err != nil {
		return nil, err
	}

	var out []models.Requisition
	for _, doc := range docs {
		id, _ := doc["_id"].(string)
		out = append(out, models.RequisitionFromDocument(id, doc))
	}
	return out, nil
}
