package store

import (
	"context"
	"os"
	"testing"
)

func TestValidDocID(t *testing.T) {
	tests := map[string]bool{
		"600519-2023": true,
		"01HZX3K9_a":  true,
		"":            false,
		"a/b":         false,
		"a.b":         false,
		"年报":          false,
	}
	for id, want := range tests {
		if got := ValidDocID(id); got != want {
			t.Errorf("ValidDocID(%q): expected %v, got %v", id, want, got)
		}
	}
}

func TestNopSink(t *testing.T) {
	var s Sink = NopSink{}
	ctx := context.Background()
	if err := s.Put(ctx, testRecord("a")); err != nil {
		t.Fatalf("put: %v", err)
	}
	rec, err := s.Get(ctx, "a")
	if err != nil || rec != nil {
		t.Fatalf("expected (nil, nil), got %+v, %v", rec, err)
	}
	recs, err := s.List(ctx, 10)
	if err != nil || len(recs) != 0 {
		t.Fatalf("expected empty list, got %+v, %v", recs, err)
	}
}

// TestPostgresSink_RoundTrip runs against a real database when
// MDAGEST_TEST_DATABASE_URL is set.
func TestPostgresSink_RoundTrip(t *testing.T) {
	dsn := os.Getenv("MDAGEST_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("MDAGEST_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := NewPostgresSink(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	want := testRecord("pg-roundtrip")
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("put: %v", err)
	}
	want.Strategy = "keyword"
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := s.Get(ctx, want.DocID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Strategy != "keyword" || got.MDA != want.MDA {
		t.Fatalf("expected upserted record, got %+v", got)
	}
	if err := s.Delete(ctx, want.DocID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.Get(ctx, want.DocID); got != nil {
		t.Fatalf("expected record deleted, got %+v", got)
	}
}
