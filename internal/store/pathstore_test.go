package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakePathstore is a minimal in-memory pathstore KV server.
type fakePathstore struct {
	mu     sync.Mutex
	nodes  map[string]json.RawMessage
	status int // forced status for every request when non-zero
	auth   string
}

func newFakePathstore() *fakePathstore {
	return &fakePathstore{nodes: make(map[string]json.RawMessage)}
}

func (f *fakePathstore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = r.Header.Get("Authorization")
	if f.status != 0 {
		http.Error(w, "forced", f.status)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/kv/")
	switch {
	case r.Method == http.MethodPut:
		var req struct {
			Value json.RawMessage `json:"value"`
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.nodes[key] = req.Value
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodGet && strings.HasSuffix(key, "/*"):
		prefix := strings.TrimSuffix(key, "*")
		var nodes []map[string]any
		for k, v := range f.nodes {
			if strings.HasPrefix(k, prefix) {
				nodes = append(nodes, map[string]any{"key_path": k, "value": v})
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"nodes": nodes})
	case r.Method == http.MethodGet:
		v, ok := f.nodes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"key_path": key, "value": v})
	case r.Method == http.MethodDelete:
		delete(f.nodes, key)
		w.WriteHeader(http.StatusNoContent)
	}
}

func testRecord(id string) Record {
	return Record{
		DocID:       id,
		Filename:    id + ".pdf",
		ContentHash: "abc123",
		Strategy:    "toc",
		MDA:         "第三节 管理层讨论与分析\n正文",
		Length:      18,
		CreatedAt:   time.Date(2024, 4, 30, 8, 0, 0, 0, time.UTC),
	}
}

func TestPathstoreSink_RoundTrip(t *testing.T) {
	fake := newFakePathstore()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	s := NewPathstoreSink(srv.URL, "secret")
	defer s.Close()
	ctx := context.Background()

	want := testRecord("600519-2023")
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := fake.nodes["mdagest/documents/600519-2023"]; !ok {
		t.Fatalf("expected record under mdagest/documents, got keys %v", fake.nodes)
	}
	if fake.auth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", fake.auth)
	}

	got, err := s.Get(ctx, "600519-2023")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	recs, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || recs[0].DocID != "600519-2023" {
		t.Fatalf("expected one listed record, got %+v", recs)
	}

	if err := s.Delete(ctx, "600519-2023"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = s.Get(ctx, "600519-2023")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) after delete, got %+v, %v", got, err)
	}
}

func TestPathstoreSink_RetryableStatus(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadRequest, false},
		{http.StatusForbidden, false},
	}
	for _, tt := range tests {
		fake := newFakePathstore()
		fake.status = tt.status
		srv := httptest.NewServer(fake)

		err := NewPathstoreSink(srv.URL, "k").Put(context.Background(), testRecord("x"))
		srv.Close()
		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		if IsRetryable(err) != tt.retryable {
			t.Errorf("status %d: expected retryable=%v, got %v (%v)", tt.status, tt.retryable, !tt.retryable, err)
		}
	}
}
