package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/procurehub/backend/internal/docstore"
	"go.uber.org/zap"
)

// failingStore errors on every call, standing in for a backend outage.
type failingStore struct{}

var errStore = errors.New("backend unavailable")

func (failingStore) Get(ctx context.Context, collection, key string) (docstore.Document, error) {
	return nil, errStore
}

func (failingStore) Put(ctx context.Context, collection, key string, doc docstore.Document) error {
	return errStore
}

func (failingStore) Append(ctx context.Context, collection string, doc docstore.Document) (string, error) {
	return "", errStore
}

func (failingStore) Query(ctx context.Context, collection string, preds []docstore.Predicate, orderBy string, descending bool, limit int64) ([]docstore.Document, error) {
	return nil, errStore
}

func TestMatchesPolicy(t *testing.T) {
	az := NewAuthorizer(docstore.NewMemoryStore(), []string{"Boss@Example.com", "  ops@example.com "}, zap.NewNop())

	tests := []struct {
		email string
		want  bool
	}{
		{"boss@example.com", true},
		{"BOSS@EXAMPLE.COM", true},
		{"ops@example.com", true},
		{"admin@example.com", true},
		{"site-ADMIN@example.com", true},
		{"badminton@example.com", true}, // substring rule is permissive
		{"user@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := az.MatchesPolicy(tt.email); got != tt.want {
				t.Errorf("MatchesPolicy(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsAdminPolicyFastPath(t *testing.T) {
	// The fast path must answer even when the store is down.
	az := NewAuthorizer(failingStore{}, []string{"boss@example.com"}, zap.NewNop())

	if !az.IsAdmin(context.Background(), Principal{UID: "u1", Email: "boss@example.com"}) {
		t.Error("allow-listed email denied admin")
	}
}

func TestIsAdminFailClosed(t *testing.T) {
	ctx := context.Background()

	az := NewAuthorizer(failingStore{}, nil, zap.NewNop())
	if az.IsAdmin(ctx, Principal{UID: "u1", Email: "user@example.com"}) {
		t.Error("store failure granted admin")
	}

	az = NewAuthorizer(docstore.NewMemoryStore(), nil, zap.NewNop())
	if az.IsAdmin(ctx, Principal{UID: "u1", Email: "user@example.com"}) {
		t.Error("missing profile granted admin")
	}

	az = NewAuthorizer(docstore.NewNoop(), nil, zap.NewNop())
	if az.IsAdmin(ctx, Principal{UID: "u1", Email: "user@example.com"}) {
		t.Error("disabled storage granted admin")
	}
}

func TestIsAdminFromStoredProfile(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	az := NewAuthorizer(store, nil, zap.NewNop())

	p := Principal{UID: "u1", Email: "user@example.com"}
	if _, err := az.EnsureProfile(ctx, p, true); err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}

	if !az.IsAdmin(ctx, p) {
		t.Error("stored isAdmin profile denied admin")
	}
}

func TestEnsureProfileIdempotent(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	az := NewAuthorizer(store, nil, zap.NewNop())

	p := Principal{UID: "u1", Email: "user@example.com", DisplayName: "Pat"}
	first, err := az.EnsureProfile(ctx, p, false)
	if err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	second, err := az.EnsureProfile(ctx, p, false)
	if err != nil {
		t.Fatalf("second EnsureProfile failed: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("createdAt changed on refresh: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updatedAt did not advance: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestEnsureProfileAdminSticky(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	az := NewAuthorizer(store, nil, zap.NewNop())

	p := Principal{UID: "u1", Email: "user@example.com"}
	if _, err := az.EnsureProfile(ctx, p, true); err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}

	// A later refresh without the hint must not downgrade the grant.
	profile, err := az.EnsureProfile(ctx, p, false)
	if err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}
	if !profile.IsAdmin {
		t.Error("refresh without admin hint downgraded isAdmin")
	}
}

func TestEnsureProfileKeepsDisplayName(t *testing.T) {
	ctx := context.Background()
	az := NewAuthorizer(docstore.NewMemoryStore(), nil, zap.NewNop())

	if _, err := az.EnsureProfile(ctx, Principal{UID: "u1", Email: "user@example.com", DisplayName: "Pat"}, false); err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}
	profile, err := az.EnsureProfile(ctx, Principal{UID: "u1", Email: "user@example.com"}, false)
	if err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}
	if profile.DisplayName != "Pat" {
		t.Errorf("DisplayName = %q, want Pat", profile.DisplayName)
	}
}

func TestSetAdminStatus(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	az := NewAuthorizer(store, nil, zap.NewNop())

	if err := az.SetAdminStatus(ctx, "ghost", true); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("SetAdminStatus on missing profile = %v, want ErrProfileNotFound", err)
	}
	if az.IsAdmin(ctx, Principal{UID: "ghost", Email: "ghost@example.com"}) {
		t.Error("failed grant left ghost uid admin")
	}

	p := Principal{UID: "u1", Email: "user@example.com"}
	if _, err := az.EnsureProfile(ctx, p, true); err != nil {
		t.Fatalf("EnsureProfile failed: %v", err)
	}

	// Revoke is only possible through the explicit override.
	if err := az.SetAdminStatus(ctx, "u1", false); err != nil {
		t.Fatalf("SetAdminStatus failed: %v", err)
	}
	if az.IsAdmin(ctx, p) {
		t.Error("revoked profile still admin")
	}

	if err := az.SetAdminStatus(ctx, "u1", true); err != nil {
		t.Fatalf("SetAdminStatus failed: %v", err)
	}
	if !az.IsAdmin(ctx, p) {
		t.Error("granted profile not admin")
	}
}

func TestSetAdminStatusDisabledStorage(t *testing.T) {
	az := NewAuthorizer(docstore.NewNoop(), nil, zap.NewNop())
	if err := az.SetAdminStatus(context.Background(), "u1", true); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("SetAdminStatus = %v, want ErrProfileNotFound", err)
	}
}
