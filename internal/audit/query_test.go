package audit

import (
	"context"
	"testing"
	"time"

	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/models"
	"go.uber.org/zap"
)

func seedAuditLog(t *testing.T) docstore.Store {
	t.Helper()
	store := docstore.NewMemoryStore()
	w := NewWriter(store, nil, zap.NewNop())
	ctx := context.Background()

	base := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	seed := []models.AuditEvent{
		{Action: models.AuditUserLogin, UserID: "u1", Timestamp: base},
		{Action: models.AuditMaterialUpdated, UserID: "u1", Resource: models.EntityMaterial, ResourceID: "m1", Timestamp: base.Add(1 * time.Hour)},
		{Action: models.AuditMaterialUpdated, UserID: "u1", Resource: models.EntityMaterial, ResourceID: "m2", Timestamp: base.Add(2 * time.Hour)},
		{Action: models.AuditMaterialUpdated, UserID: "u1", Resource: models.EntityMaterial, ResourceID: "m3", Timestamp: base.Add(3 * time.Hour)},
		{Action: models.AuditPermissionDenied, UserID: "u1", Resource: models.EntityRequisition, Timestamp: base.Add(4 * time.Hour)},
		{Action: models.AuditUserLogin, UserID: "u2", Timestamp: base.Add(5 * time.Hour)},
	}
	for _, e := range seed {
		w.Record(ctx, e)
	}
	return store
}

func TestQueryFilters(t *testing.T) {
	store := seedAuditLog(t)
	engine := NewEngine(store, zap.NewNop())
	ctx := context.Background()

	base := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	start := base.Add(1 * time.Hour)
	end := base.Add(4 * time.Hour)

	tests := []struct {
		name   string
		filter models.AuditLogFilter
		want   int
	}{
		{"unfiltered", models.AuditLogFilter{}, 6},
		{"by user", models.AuditLogFilter{UserID: "u1"}, 5},
		{"by action", models.AuditLogFilter{Action: models.AuditMaterialUpdated}, 3},
		{"by resource", models.AuditLogFilter{Resource: models.EntityRequisition}, 1},
		{"user and action", models.AuditLogFilter{UserID: "u2", Action: models.AuditUserLogin}, 1},
		{"user and action no match", models.AuditLogFilter{UserID: "u2", Action: models.AuditMaterialUpdated}, 0},
		{"start date inclusive", models.AuditLogFilter{StartDate: &start}, 5},
		{"end date inclusive", models.AuditLogFilter{EndDate: &end}, 5},
		{"date window", models.AuditLogFilter{StartDate: &start, EndDate: &end}, 4},
		{"limit", models.AuditLogFilter{Limit: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Query(ctx, tt.filter)
			if len(got) != tt.want {
				t.Errorf("Query returned %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestQueryNewestFirst(t *testing.T) {
	store := seedAuditLog(t)
	engine := NewEngine(store, zap.NewNop())

	got := engine.Query(context.Background(), models.AuditLogFilter{
		UserID: "u1",
		Action: models.AuditMaterialUpdated,
		Limit:  2,
	})
	if len(got) != 2 {
		t.Fatalf("Query returned %d events, want 2", len(got))
	}
	if got[0].ResourceID != "m3" || got[1].ResourceID != "m2" {
		t.Errorf("order = [%s, %s], want [m3, m2]", got[0].ResourceID, got[1].ResourceID)
	}
	if !got[0].Timestamp.After(got[1].Timestamp) {
		t.Errorf("timestamps not descending: %v, %v", got[0].Timestamp, got[1].Timestamp)
	}
}

func TestQueryRoundTrip(t *testing.T) {
	store := docstore.NewMemoryStore()
	w := NewWriter(store, nil, zap.NewNop())
	engine := NewEngine(store, zap.NewNop())
	ctx := context.Background()

	in := models.AuditEvent{
		Action:       models.AuditRoleChanged,
		UserID:       "admin1",
		TargetUserID: "u9",
		Resource:     "user_admin_status",
		Details:      map[string]any{"isAdmin": true},
		Timestamp:    time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC),
		IPAddress:    "10.0.0.1",
		UserAgent:    "curl/8.0",
	}
	w.Record(ctx, in)

	got := engine.Query(ctx, models.AuditLogFilter{UserID: "admin1"})
	if len(got) != 1 {
		t.Fatalf("Query returned %d events, want 1", len(got))
	}
	e := got[0]
	if e.Action != in.Action || e.UserID != in.UserID || e.TargetUserID != in.TargetUserID ||
		e.Resource != in.Resource || e.IPAddress != in.IPAddress || e.UserAgent != in.UserAgent {
		t.Errorf("round-trip mismatch: %+v", e)
	}
	if !e.Timestamp.Equal(in.Timestamp) {
		t.Errorf("timestamp = %v, want %v", e.Timestamp, in.Timestamp)
	}
	if e.Details["isAdmin"] != true {
		t.Errorf("details = %v", e.Details)
	}
}

func TestQueryDefaultLimit(t *testing.T) {
	store := docstore.NewMemoryStore()
	w := NewWriter(store, nil, zap.NewNop())
	engine := NewEngine(store, zap.NewNop())
	ctx := context.Background()

	base := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultQueryLimit+20; i++ {
		w.Record(ctx, models.AuditEvent{
			Action:    models.AuditUserLogin,
			UserID:    "u1",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	got := engine.Query(ctx, models.AuditLogFilter{})
	if len(got) != DefaultQueryLimit {
		t.Errorf("unbounded query returned %d events, want %d", len(got), DefaultQueryLimit)
	}
}

func TestQueryFailsOpenToEmpty(t *testing.T) {
	for _, store := range []docstore.Store{failingStore{}, docstore.NewNoop()} {
		engine := NewEngine(store, zap.NewNop())
		got := engine.Query(context.Background(), models.AuditLogFilter{UserID: "u1"})
		if got == nil {
			t.Error("Query returned nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("Query returned %d events, want 0", len(got))
		}
	}
}
