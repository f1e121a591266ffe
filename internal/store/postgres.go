package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
	CREATE TABLE IF NOT EXISTS mda_extraction (
		doc_id       TEXT PRIMARY KEY,
		filename     TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		strategy     TEXT NOT NULL,
		mda          TEXT NOT NULL,
		length       INTEGER NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS mda_extraction_content_hash_idx ON mda_extraction (content_hash);
`

// PostgresSink stores records in the mda_extraction table.
type PostgresSink struct {
	db *pgxpool.Pool
}

// NewPostgresSink connects to databaseURL and ensures the schema exists.
func NewPostgresSink(ctx context.Context, databaseURL string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	s := &PostgresSink{db: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the mda_extraction table if it does not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Put upserts rec with conflict handling on doc_id.
func (s *PostgresSink) Put(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO mda_extraction (
			doc_id, filename, content_hash, strategy, mda, length, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (doc_id) DO UPDATE SET
			filename = EXCLUDED.filename,
			content_hash = EXCLUDED.content_hash,
			strategy = EXCLUDED.strategy,
			mda = EXCLUDED.mda,
			length = EXCLUDED.length,
			updated_at = EXCLUDED.updated_at
	`, rec.DocID, rec.Filename, rec.ContentHash, rec.Strategy, rec.MDA, rec.Length, rec.CreatedAt)
	if err != nil {
		return pgError("upsert record", err)
	}
	return nil
}

func (s *PostgresSink) Get(ctx context.Context, docID string) (*Record, error) {
	var rec Record
	err := s.db.QueryRow(ctx, `
		SELECT doc_id, filename, content_hash, strategy, mda, length, created_at
		FROM mda_extraction
		WHERE doc_id = $1
	`, docID).Scan(&rec.DocID, &rec.Filename, &rec.ContentHash, &rec.Strategy, &rec.MDA, &rec.Length, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pgError("get record", err)
	}
	return &rec, nil
}

// List returns the most recently created records first.
func (s *PostgresSink) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(ctx, `
		SELECT doc_id, filename, content_hash, strategy, mda, length, created_at
		FROM mda_extraction
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, pgError("list records", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.DocID, &rec.Filename, &rec.ContentHash, &rec.Strategy, &rec.MDA, &rec.Length, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("list records", err)
	}
	return recs, nil
}

func (s *PostgresSink) Delete(ctx context.Context, docID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM mda_extraction WHERE doc_id = $1`, docID); err != nil {
		return pgError("delete record", err)
	}
	return nil
}

func (s *PostgresSink) Close() {
	s.db.Close()
}

// pgError wraps err, marking failures that never reached the server as retryable.
func pgError(op string, err error) error {
	if pgconn.SafeToRetry(err) {
		return fmt.Errorf("%s: %w", op, &RetryableError{Message: err.Error()})
	}
	return fmt.Errorf("%s: %w", op, err)
}
