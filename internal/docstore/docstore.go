package docstore

import (
	"context"
	"errors"
)

// Operators accepted in a Predicate.
const (
	OpEqual      = "=="
	OpGreaterEq  = ">="
	OpLessEq     = "<="
)

var (
	// ErrNotFound is returned by Get when no document exists under the key.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrDisabled is returned by the no-op store used when no storage
	// backend is configured.
	ErrDisabled = errors.New("docstore: storage not configured")
)

// Document is the wire shape of a stored record. Keyed documents carry
// their key implicitly; appended documents get a store-generated "_id".
type Document map[string]any

// Predicate is a single field constraint. A query ANDs all of its
// predicates together.
type Predicate struct {
	Field string
	Op    string
	Value any
}

// Store is the narrow surface the audit/authz layers depend on. Keyed
// collections (userProfiles, credentials, ...) use Get/Put; append-only
// collections (audit_logs) use Append/Query.
type Store interface {
	Get(ctx context.Context, collection, key string) (Document, error)
	Put(ctx context.Context, collection, key string, doc Document) error
	Append(ctx context.Context, collection string, doc Document) (string, error)
	Query(ctx context.Context, collection string, preds []Predicate, orderBy string, descending bool, limit int64) ([]Document, error)
}

// Noop backs the soft-disabled mode: reads miss, writes are dropped.
// Callers already degrade on store errors, so running without storage
// needs no special casing above this layer.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Get(ctx context.Context, collection, key string) (Document, error) {
	return nil, ErrDisabled
}

func (Noop) Put(ctx context.Context, collection, key string, doc Document) error {
	return ErrDisabled
}

func (Noop) Append(ctx context.Context, collection string, doc Document) (string, error) {
	return "", ErrDisabled
}

func (Noop) Query(ctx context.Context, collection string, preds []Predicate, orderBy string, descending bool, limit int64) ([]Document, error) {
	return nil, ErrDisabled
}
