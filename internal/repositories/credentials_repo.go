package repositories

import (
	"context"
	"strings"

	"github.com/procurehub/backend/internal/docstore"
	"github.com/procurehub/backend/internal/models"
)

const credentialsCollection = "credentials"

// CredentialsRepo stores login secrets keyed by lowercased email. User
// profiles live elsewhere and are owned by the authorizer.
type CredentialsRepo struct {
	store docstore.Store
}

func NewCredentialsRepo(store docstore.Store) *CredentialsRepo {
	return &CredentialsRepo{store: store}
}

func (r *CredentialsRepo) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	doc, err := r.store.Get(ctx, credentialsCollection, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	cred := models.CredentialFromDocument(doc)
	return &cred, nil
}

func (r *CredentialsRepo) Put(ctx context.Context, cred models.Credential) error {
	return r.store.Put(ctx, credentialsCollection, normalizeEmail(cred.Email), cred.Document())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
