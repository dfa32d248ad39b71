package authz

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/models"
	"go.uber.org/zap"
)

const profilesCollection = "userProfiles"

// ErrProfileNotFound is returned by SetAdminStatus when no profile exists
// for the uid. It is the only failure this package surfaces to callers;
// everything else degrades to "not admin".
var ErrProfileNotFound = errors.New("authz: profile not found")

// Principal is an authenticated identity as seen by the authorizer.
type Principal struct {
	UID         string
	Email       string
	DisplayName string
}

// Authorizer decides admin privilege. Decisions combine a static email
// allow-list (the fast path, usable before any profile exists) with the
// persisted profile's isAdmin flag.
type Authorizer struct {
	store       docstore.Store
	adminEmails []string
	log         *zap.Logger
}

// NewAuthorizer builds an authorizer over the given store. adminEmails is
// the injected allow-list; matching is case-insensitive.
func NewAuthorizer(store docstore.Store, adminEmails []string, log *zap.Logger) *Authorizer {
	normalized := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			normalized = append(normalized, e)
		}
	}
	return &Authorizer{store: store, adminEmails: normalized, log: log}
}

// MatchesPolicy reports whether the email passes the allow-list fast
// path: an exact case-insensitive match, or the email containing the
// substring "admin". The substring rule is deliberately permissive and
// kept as-is; tightening it is a product decision.
func (a *Authorizer) MatchesPolicy(email string) bool {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return false
	}
	for _, allowed := range a.adminEmails {
		if e == allowed {
			return true
		}
	}
	return strings.Contains(e, "admin")
}

// IsAdmin reports whether the principal holds admin privilege. Policy
// matches short-circuit to true and reconcile the stored profile in the
// background so later profile lookups agree. Otherwise the stored
// profile decides; absence or store failure is "not admin" (fail-closed).
func (a *Authorizer) IsAdmin(ctx context.Context, p Principal) bool {
	if a.MatchesPolicy(p.Email) {
		go a.reconcileAdminProfile(p)
		return true
	}

	doc, err := a.store.Get(ctx, profilesCollection, p.UID)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) && !errors.Is(err, docstore.ErrDisabled) {
			a.log.Warn("profile lookup failed, denying admin", zap.String("uid", p.UID), zap.Error(err))
		}
		return false
	}
	return models.ProfileFromDocument(doc).IsAdmin
}

func (a *Authorizer) reconcileAdminProfile(p Principal) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := a.EnsureProfile(ctx, p, true); err != nil {
		if !errors.Is(err, docstore.ErrDisabled) {
			a.log.Warn("admin profile reconcile failed", zap.String("uid", p.UID), zap.Error(err))
		}
	}
}

// EnsureProfile creates the principal's profile on first sight and
// refreshes it afterwards. Idempotent: createdAt is preserved, isAdmin is
// the OR of the stored flag and the hint (grants are sticky and never
// downgraded here), updatedAt is refreshed. Concurrent first logins may
// both run the read-modify-write; both compute the same isAdmin, so the
// store's last-write-wins on the full document is correct.
func (a *Authorizer) EnsureProfile(ctx context.Context, p Principal, adminHint bool) (*models.UserProfile, error) {
	now := time.Now().UTC()
	profile := models.UserProfile{
		UID:         p.UID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		IsAdmin:     adminHint,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	existing, err := a.store.Get(ctx, profilesCollection, p.UID)
	switch {
	case err == nil:
		prev := models.ProfileFromDocument(existing)
		profile.CreatedAt = prev.CreatedAt
		profile.IsAdmin = profile.IsAdmin || prev.IsAdmin
		if profile.DisplayName == "" {
			profile.DisplayName = prev.DisplayName
		}
	case !errors.Is(err, docstore.ErrNotFound):
		return nil, err
	}

	if err := a.store.Put(ctx, profilesCollection, p.UID, profile.Document()); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetAdminStatus is the explicit grant/revoke override. The profile must
// already exist; it is not created here and the allow-list fast path does
// not apply. This is the one sanctioned way to take admin away.
func (a *Authorizer) SetAdminStatus(ctx context.Context, uid string, isAdmin bool) error {
	doc, err := a.store.Get(ctx, profilesCollection, uid)
	if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrDisabled) {
		return ErrProfileNotFound
	}
	if err != nil {
		return err
	}

	profile := models.ProfileFromDocument(doc)
	profile.IsAdmin = isAdmin
	profile.UpdatedAt = time.Now().UTC()
	return a.store.Put(ctx, profilesCollection, uid, profile.Document())
}

// GetProfile loads a stored profile without side effects.
func (a *Authorizer) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	doc, err := a.store.Get(ctx, profilesCollection, uid)
	if err != nil {
		return nil, err
	}
	profile := models.ProfileFromDocument(doc)
	return &profile, nil
}
