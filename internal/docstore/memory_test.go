package docstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "things", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}

	doc := Document{"name": "bolt", "qty": int64(5)}
	if err := s.Put(ctx, "things", "t1", doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "things", "t1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got["name"] != "bolt" || got["qty"] != int64(5) {
		t.Errorf("Get returned %v", got)
	}
	if got["_id"] != "t1" {
		t.Errorf("stored document _id = %v, want t1", got["_id"])
	}

	// Put replaces the whole document
	if err := s.Put(ctx, "things", "t1", Document{"name": "nut"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, _ = s.Get(ctx, "things", "t1")
	if _, ok := got["qty"]; ok {
		t.Error("replaced document still carries old field qty")
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Put(ctx, "things", "t1", Document{"name": "bolt"})
	got, _ := s.Get(ctx, "things", "t1")
	got["name"] = "mutated"

	again, _ := s.Get(ctx, "things", "t1")
	if again["name"] != "bolt" {
		t.Errorf("mutation through returned document leaked into store: %v", again["name"])
	}
}

func TestMemoryStoreAppend(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id1, err := s.Append(ctx, "log", Document{"n": int64(1)})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	id2, _ := s.Append(ctx, "log", Document{"n": int64(2)})
	if id1 == "" || id1 == id2 {
		t.Errorf("Append ids not unique: %q %q", id1, id2)
	}

	got, err := s.Get(ctx, "log", id1)
	if err != nil {
		t.Fatalf("Get appended doc failed: %v", err)
	}
	if got["_id"] != id1 {
		t.Errorf("appended document _id = %v, want %v", got["_id"], id1)
	}
}

func TestMemoryStoreQuery(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	docs := []Document{
		{"user": "u1", "action": "create", "ts": base},
		{"user": "u1", "action": "update", "ts": base.Add(1 * time.Hour)},
		{"user": "u1", "action": "update", "ts": base.Add(2 * time.Hour)},
		{"user": "u2", "action": "update", "ts": base.Add(3 * time.Hour)},
	}
	for _, d := range docs {
		if _, err := s.Append(ctx, "log", d); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	tests := []struct {
		name      string
		preds     []Predicate
		limit     int64
		wantCount int
	}{
		{"no predicates", nil, 0, 4},
		{"single equality", []Predicate{{"user", OpEqual, "u1"}}, 0, 3},
		{"predicates AND", []Predicate{{"user", OpEqual, "u1"}, {"action", OpEqual, "update"}}, 0, 2},
		{"no match", []Predicate{{"user", OpEqual, "u3"}}, 0, 0},
		{"range inclusive lower", []Predicate{{"ts", OpGreaterEq, base.Add(1 * time.Hour)}}, 0, 3},
		{"range inclusive upper", []Predicate{{"ts", OpLessEq, base.Add(1 * time.Hour)}}, 0, 2},
		{"limit applies", nil, 2, 2},
		{"missing field never matches", []Predicate{{"nope", OpEqual, "x"}}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Query(ctx, "log", tt.preds, "ts", true, tt.limit)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(got) != tt.wantCount {
				t.Errorf("Query returned %d docs, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestMemoryStoreQueryOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		_, _ = s.Append(ctx, "log", Document{"n": int64(i), "ts": base.Add(time.Duration(i) * time.Minute)})
	}

	desc, err := s.Query(ctx, "log", nil, "ts", true, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	for i := range desc {
		if want := int64(3 - i); desc[i]["n"] != want {
			t.Errorf("descending[%d].n = %v, want %v", i, desc[i]["n"], want)
		}
	}

	asc, err := s.Query(ctx, "log", nil, "ts", false, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	for i := range asc {
		if want := int64(i); asc[i]["n"] != want {
			t.Errorf("ascending[%d].n = %v, want %v", i, asc[i]["n"], want)
		}
	}
}

func TestNoopStore(t *testing.T) {
	s := NewNoop()
	ctx := context.Background()

	if _, err := s.Get(ctx, "c", "k"); !errors.Is(err, ErrDisabled) {
		t.Errorf("Get = %v, want ErrDisabled", err)
	}
	if err := s.Put(ctx, "c", "k", Document{}); !errors.Is(err, ErrDisabled) {
		t.Errorf("Put = %v, want ErrDisabled", err)
	}
	if _, err := s.Append(ctx, "c", Document{}); !errors.Is(err, ErrDisabled) {
		t.Errorf("Append = %v, want ErrDisabled", err)
	}
	if _, err := s.Query(ctx, "c", nil, "", false, 0); !errors.Is(err, ErrDisabled) {
		t.Errorf("Query = %v, want ErrDisabled", err)
	}
}
