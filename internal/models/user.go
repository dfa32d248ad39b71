package models

import (
	"time"

	"github.com/procurehub/backend/internal/docstore"
)

// UserProfile is the persisted view of a principal, keyed by uid in the
// userProfiles collection. The admin authorizer is its only writer.
type UserProfile struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p UserProfile) Document() docstore.Document {
	doc := docstore.Document{
		"uid":       p.UID,
		"email":     p.Email,
		"isAdmin":   p.IsAdmin,
		"createdAt": p.CreatedAt,
		"updatedAt": p.UpdatedAt,
	}
	if p.DisplayName != "" {
		doc["displayName"] = p.DisplayName
	}
	return doc
}

func ProfileFromDocument(doc docstore.Document) UserProfile {
	return UserProfile{
		UID:         docString(doc, "uid"),
		Email:       docString(doc, "email"),
		DisplayName: docString(doc, "displayName"),
		IsAdmin:     docBool(doc, "isAdmin"),
		CreatedAt:   docTime(doc, "createdAt"),
		UpdatedAt:   docTime(doc, "updatedAt"),
	}
}

// Credential holds login secrets separately from the profile, keyed by
// lowercased email in the credentials collection.
type Credential struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (c Credential) Document() docstore.Document {
	doc := docstore.Document{
		"uid":          c.UID,
		"email":        c.Email,
		"passwordHash": c.PasswordHash,
		"role":         c.Role,
		"createdAt":    c.CreatedAt,
	}
	if c.DisplayName != "" {
		doc["displayName"] = c.DisplayName
	}
	return doc
}

func CredentialFromDocument(doc docstore.Document) Credential {
	return Credential{
		UID:          docString(doc, "uid"),
		Email:        docString(doc, "email"),
		DisplayName:  docString(doc, "displayName"),
		PasswordHash: docString(doc, "passwordHash"),
		Role:         docString(doc, "role"),
		CreatedAt:    docTime(doc, "createdAt"),
	}
}
