package audit

import (
	"context"
	"time"

	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/events"
	"github.com/procurehub/backend/internal/models"
	"go.uber.org/zap"
)

// Collection is the append-only audit log collection. The Writer is the
// only component that appends to it.
const Collection = "audit_logs"

// Writer records audit events best-effort: a failed append is logged and
// swallowed so the business operation that triggered it is never
// perturbed. No method returns an error; there is no retry or queue.
type Writer struct {
	store     docstore.Store
	publisher events.Publisher
	log       *zap.Logger
}

// NewWriter builds a Writer. publisher may be nil; when set, every
// durably appended event is also published on the audit stream for live
// consumers, again best-effort.
func NewWriter(store docstore.Store, publisher events.Publisher, log *zap.Logger) *Writer {
	return &Writer{store: store, publisher: publisher, log: log}
}

// Record appends one event. The timestamp defaults to the moment of
// invocation when the caller left it zero, so it reflects occurrence
// time rather than store-write time.
func (w *Writer) Record(ctx context.Context, e models.AuditEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	id, err := w.store.Append(ctx, Collection, e.Document())
	if err != nil {
		w.log.Warn("audit append failed, event dropped",
			zap.String("action", e.Action),
			zap.String("user_id", e.UserID),
			zap.Error(err),
		)
		return
	}
	e.ID = id
	w.publish(ctx, e)
}

// RecordPermissionGranted reports a passed authorization check.
func (w *Writer) RecordPermissionGranted(ctx context.Context, userID, action, resource string) {
	w.Record(ctx, models.AuditEvent{
		Action:    models.AuditPermissionGranted,
		UserID:    userID,
		Resource:  resource,
		Timestamp: time.Now().UTC(),
		Details: map[string]any{
			"attemptedAction": action,
		},
	})
}

// RecordPermissionDenied reports a failed authorization check, carrying
// the permission that was missing and the principal's role when known.
func (w *Writer) RecordPermissionDenied(ctx context.Context, userID, action, resource, requiredPermission, userRole string) {
	details := map[string]any{
		"attemptedAction":    action,
		"requiredPermission": requiredPermission,
	}
	if userRole != "" {
		details["userRole"] = userRole
	}
	w.Record(ctx, models.AuditEvent{
		Action:    models.AuditPermissionDenied,
		UserID:    userID,
		Resource:  resource,
		Timestamp: time.Now().UTC(),
		Details:   details,
	})
}

// RecordSecurityEvent reports a security occurrence (failed login,
// password reset, suspicious activity, ...). kind must come from the
// security action constants in models.
func (w *Writer) RecordSecurityEvent(ctx context.Context, kind, userID string, details map[string]any) {
	w.Record(ctx, models.AuditEvent{
		Action:    kind,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Details:   details,
	})
}

func (w *Writer) publish(ctx context.Context, e models.AuditEvent) {
	if w.publisher == nil {
		return
	}
	payload := map[string]any(e.Document())
	payload["id"] = e.ID
	err := w.publisher.Publish(ctx, events.StreamAudit, events.Event{
		Type:    events.EventAuditLogged,
		Payload: payload,
	})
	if err != nil {
		w.log.Debug("audit event publish failed", zap.String("action", e.Action), zap.Error(err))
	}
}
