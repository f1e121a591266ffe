// Package store persists MD&A extraction results.
package store

import (
	"context"
	"regexp"
	"time"
)

// Record is one persisted extraction result, keyed by DocID.
type Record struct {
	DocID       string    `json:"doc_id"`
	Filename    string    `json:"filename"`
	ContentHash string    `json:"content_hash"`
	Strategy    string    `json:"strategy"`
	MDA         string    `json:"mda"`
	Length      int       `json:"length"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sink is a result backend. Get returns (nil, nil) when docID is unknown.
type Sink interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, docID string) (*Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	Delete(ctx context.Context, docID string) error
	Close()
}

var docIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidDocID reports whether id is usable as a key in every sink.
func ValidDocID(id string) bool {
	return docIDRe.MatchString(id)
}

// NopSink discards everything. It backs RESULT_SINK=none.
type NopSink struct{}

func (NopSink) Put(context.Context, Record) error { return nil }
func (NopSink) Get(context.Context, string) (*Record, error) { return nil, nil }
func (NopSink) List(context.Context, int) ([]Record, error) { return nil, nil }
func (NopSink) Delete(context.Context, string) error { return nil }
func (NopSink) Close() {}
