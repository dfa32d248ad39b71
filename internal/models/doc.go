package models

import (
	"time"

	"github.com/procurehub/backend/internal/docstore"
)

// Typed accessors for decoding stored documents. Missing or mistyped
// fields decode to zero values.

func docString(doc docstore.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docBool(doc docstore.Document, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func docFloat(doc docstore.Document, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func docInt(doc docstore.Document, key string) int64 {
	switch v := doc[key].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func docTime(doc docstore.Document, key string) time.Time {
	t, _ := doc[key].(time.Time)
	return t
}

func docMap(doc docstore.Document, key string) map[string]any {
	switch v := doc[key].(type) {
	case map[string]any:
		return v
	case docstore.Document:
		return v
	}
	return nil
}
