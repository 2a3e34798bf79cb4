// Package store implements the document collections backing the seeker
// profile forms.
//
// Records are schemaless JSONB rows grouped by collection name, read back by
// full collection scan. Forms write whatever shape the client submitted —
// legacy field variants are preserved as-is and resolved at read time by the
// seeker package's accessors.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Collection names used by the seeker forms.
const (
	CollectionProfessionalDetails = "professional_details"
	CollectionSeekerRequirements  = "seeker_requirements"
)

// RawRecord is an opaque document plus its store-assigned id.
type RawRecord struct {
	ID     string
	Fields map[string]any
}

// DocumentStore reads and writes schemaless documents in Postgres.
type DocumentStore struct {
	pool *pgxpool.Pool
}

// New returns a DocumentStore backed by the given pool.
func New(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

// FetchAll returns every document in a collection, in insertion order.
func (s *DocumentStore) FetchAll(ctx context.Context, collection string) ([]RawRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data
		 FROM documents
		 WHERE collection = $1
		 ORDER BY created_at ASC`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents %q: %w", collection, err)
	}
	defer rows.Close()

	var records []RawRecord
	for rows.Next() {
		var r RawRecord
		if err := rows.Scan(&r.ID, &r.Fields); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Insert stores a new document and returns its assigned id.
func (s *DocumentStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (id, collection, data, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		id, collection, fields,
	)
	if err != nil {
		return "", fmt.Errorf("insert document into %q: %w", collection, err)
	}
	return id, nil
}
