package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by unit tests and local
// development without a Mongo instance. Semantics mirror MongoStore:
// Put replaces whole documents, Append generates keys, Query ANDs
// predicates and sorts on a single field.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Document)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, key string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDocument(doc), nil
}

func (s *MemoryStore) Put(ctx context.Context, collection, key string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Document)
	}
	stored := copyDocument(doc)
	stored["_id"] = key
	s.collections[collection][key] = stored
	return nil
}

func (s *MemoryStore) Append(ctx context.Context, collection string, doc Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Document)
	}
	key := uuid.New().String()
	stored := copyDocument(doc)
	stored["_id"] = key
	s.collections[collection][key] = stored
	return key, nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, preds []Predicate, orderBy string, descending bool, limit int64) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Document
	for _, doc := range s.collections[collection] {
		if matchesAll(doc, preds) {
			matched = append(matched, copyDocument(doc))
		}
	}

	if orderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			cmp := compareValues(matched[i][orderBy], matched[j][orderBy])
			if descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func matchesAll(doc Document, preds []Predicate) bool {
	for _, p := range preds {
		v, ok := doc[p.Field]
		if !ok {
			return false
		}
		cmp := compareValues(v, p.Value)
		switch p.Op {
		case OpEqual:
			if cmp != 0 {
				return false
			}
		case OpGreaterEq:
			if cmp < 0 {
				return false
			}
		case OpLessEq:
			if cmp > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compareValues orders the scalar types that appear in stored documents.
// Mismatched types compare as unequal rather than panicking.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			default:
				return 0
			}
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return av - bv
		}
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case bool:
		if bv, ok := b.(bool); ok {
			if av == bv {
				return 0
			}
			if !av {
				return -1
			}
			return 1
		}
	}
	return -1
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if nested, ok := v.(map[string]any); ok {
			out[k] = copyDocument(nested)
			continue
		}
		out[k] = v
	}
	return out
}
