package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/models"
)

const materialsCollection = "materials"

type MaterialRepo struct {
	store docstore.Store
}

func NewMaterialRepo(store docstore.Store) *MaterialRepo {
	return &MaterialRepo{store: store}
}

func (r *MaterialRepo) Create(ctx context.Context, m *models.Material) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return r.store.Put(ctx, materialsCollection, m.ID, m.Document())
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*models.Material, error) {
	doc, err := r.store.Get(ctx, materialsCollection, id)
	if err != nil {
		return nil, err
	}
	if deleted, _ := doc["deleted"].(bool); deleted {
		return nil, docstore.ErrNotFound
	}
	m := models.MaterialFromDocument(id, doc)
	return &m, nil
}

func (r *MaterialRepo) Update(ctx context.Context, m *models.Material) error {
	return r.store.Put(ctx, materialsCollection, m.ID, m.Document())
}

func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	// The docstore has no delete primitive; materials are soft-deleted by
	// replacing the document with a tombstone marker.
	doc := docstore.Document{"deleted": true}
	return r.store.Put(ctx, materialsCollection, id, doc)
}

func (r *MaterialRepo) List(ctx context.Context, category string, limit int64) ([]models.Material, error) {
	var preds []docstore.Predicate
	if category != "" {
		preds = append(preds, docstore.Predicate{Field: "category", Op: docstore.OpEqual, Value: category})
	}
	docs, err := r.store.Query(ctx, materialsCollection, preds, "createdAt", true, limit)
	if err != nil {
		return nil, err
	}

	var out []models.Material
	for _, doc := range docs {
		if deleted, _ := doc["deleted"].(bool); deleted {
			continue
		}
		id, _ := doc["_id"].(string)
		out = append(out, models.MaterialFromDocument(id, doc))
	}
	return out, nil
}
