package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// ExtractionStore persists extraction runs in Postgres
type ExtractionStore struct {
	db *sql.DB
}

// NewExtractionStore connects to the database and prepares the schema
func NewExtractionStore(databaseURL string) (*ExtractionStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &ExtractionStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables and extensions
func (es *ExtractionStore) initSchema() error {
	queries := []string{
		// Enable pgvector extension
		`CREATE EXTENSION IF NOT EXISTS vector;`,

		// Create extractions table
		`CREATE TABLE IF NOT EXISTS extractions (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			raw_output TEXT NOT NULL,
			entity_count INTEGER NOT NULL,
			fingerprint vector(384),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,

		// Create index for fingerprint similarity search
		`CREATE INDEX IF NOT EXISTS extractions_fingerprint_idx ON extractions
		 USING ivfflat (fingerprint vector_cosine_ops) WITH (lists = 100);`,
	}

	for _, query := range queries {
		if _, err := es.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Save stores one extraction run with its source-text fingerprint
func (es *ExtractionStore) Save(ctx context.Context, source, rawOutput string, entityCount int, fingerprint []float32) error {
	id := uuid.New().String()
	vec := pgvector.NewVector(fingerprint)

	query := `
		INSERT INTO extractions (id, source, raw_output, entity_count, fingerprint)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := es.db.ExecContext(ctx, query, id, source, rawOutput, entityCount, vec)
	if err != nil {
		return fmt.Errorf("failed to store extraction: %w", err)
	}

	return nil
}

// SimilarExtraction is a past run ranked by fingerprint similarity
type SimilarExtraction struct {
	ID          string
	Source      string
	EntityCount int
	Similarity  float64
}

// Similar finds past extractions whose source text resembles the fingerprint
func (es *ExtractionStore) Similar(ctx context.Context, fingerprint []float32, topK int) ([]SimilarExtraction, error) {
	vec := pgvector.NewVector(fingerprint)

	query := `
		SELECT id, source, entity_count, 1 - (fingerprint <=> $1) as similarity
		FROM extractions
		WHERE fingerprint IS NOT NULL
		ORDER BY fingerprint <=> $1
		LIMIT $2
	`

	rows, err := es.db.QueryContext(ctx, query, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	results := []SimilarExtraction{}
	for rows.Next() {
		var result SimilarExtraction
		if err := rows.Scan(&result.ID, &result.Source, &result.EntityCount, &result.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// StoredExtraction is one persisted run
type StoredExtraction struct {
	ID          string
	Source      string
	RawOutput   string
	EntityCount int
	CreatedAt   time.Time
}

// Recent returns the most recent extraction runs, newest first
func (es *ExtractionStore) Recent(ctx context.Context, limit int) ([]StoredExtraction, error) {
	query := `
		SELECT id, source, raw_output, entity_count, created_at
		FROM extractions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := es.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list extractions: %w", err)
	}
	defer rows.Close()

	results := []StoredExtraction{}
	for rows.Next() {
		var rec StoredExtraction
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.RawOutput, &rec.EntityCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		results = append(results, rec)
	}

	return results, rows.Err()
}

// Count returns the number of stored extractions
func (es *ExtractionStore) Count(ctx context.Context) (int, error) {
	var count int
	err := es.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM extractions").Scan(&count)
	return count, err
}

// Close closes the database connection
func (es *ExtractionStore) Close() error {
	return es.db.Close()
}
