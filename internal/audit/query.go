package audit

import (
	"context"
	"errors"

	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/models"
	"go.uber.org/zap"
)

// DefaultQueryLimit caps unbounded history scans when the filter carries
// no limit of its own.
const DefaultQueryLimit = 100

// Engine answers filtered, ordered history queries over the audit log.
// Results are always newest-first on timestamp; that ordering is part of
// the contract and not configurable per call.
type Engine struct {
	store docstore.Store
	log   *zap.Logger
}

func NewEngine(store docstore.Store, log *zap.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// Query materializes the matching events. All filter fields AND together;
// date bounds are inclusive. A store failure degrades to an empty result
// rather than an error, matching the Writer's best-effort posture.
func (e *Engine) Query(ctx context.Context, f models.AuditLogFilter) []models.AuditEvent {
	var preds []docstore.Predicate
	if f.UserID != "" {
		preds = append(preds, docstore.Predicate{Field: "userId", Op: docstore.OpEqual, Value: f.UserID})
	}
	if f.Action != "" {
		preds = append(preds, docstore.Predicate{Field: "action", Op: docstore.OpEqual, Value: f.Action})
	}
	if f.Resource != "" {
		preds = append(preds, docstore.Predicate{Field: "resource", Op: docstore.OpEqual, Value: f.Resource})
	}
	if f.StartDate != nil {
		preds = append(preds, docstore.Predicate{Field: "timestamp", Op: docstore.OpGreaterEq, Value: *f.StartDate})
	}
	if f.EndDate != nil {
		preds = append(preds, docstore.Predicate{Field: "timestamp", Op: docstore.OpLessEq, Value: *f.EndDate})
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	docs, err := e.store.Query(ctx, Collection, preds, "timestamp", true, limit)
	if err != nil {
		if !errors.Is(err, docstore.ErrDisabled) {
			e.log.Warn("audit query failed, returning empty history", zap.Error(err))
		}
		return []models.AuditEvent{}
	}

	out := make([]models.AuditEvent, 0, len(docs))
	for _, doc := range docs {
		out = append(out, models.AuditEventFromDocument(doc))
	}
	return out
}
