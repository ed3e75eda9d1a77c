package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := Record{
		ID:          "b1",
		Title:       "Basic",
		RequestHash: "abc",
		Mode:        "smart",
		NodeCount:   2,
		Document:    []byte("{}"),
		CreatedAt:   time.Now(),
	}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Basic" || got.NodeCount != 2 {
		t.Errorf("got %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now()
	for i, id := range []string{"old", "mid", "new"} {
		rec := Record{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Put(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[0].ID != "new" || recs[2].ID != "old" {
		t.Errorf("unexpected order: %+v", recs)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: %d records", len(limited))
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, Record{ID: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("record survived delete: %v", err)
	}

	// Absent ids are fine.
	if err := s.Delete(ctx, "x"); err != nil {
		t.Errorf("Delete(absent) = %v", err)
	}
}
