// Package index keeps a queryable copy of persisted KPI records in Postgres
// and builds forecast training data from it.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
)

// Entry is one indexed KPI record.
type Entry struct {
	OwnerID      string
	BaseName     string
	SourceKey    string
	Checksum     string
	ParsedValues models.Scalars
	KPIs         models.Ratios
	Embedding    []float64
	CreatedAt    time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS kpi_records (
	owner_id      TEXT NOT NULL,
	base_name     TEXT NOT NULL,
	source_key    TEXT NOT NULL,
	checksum      TEXT NOT NULL,
	parsed_values JSONB NOT NULL,
	kpis          JSONB NOT NULL,
	embedding     DOUBLE PRECISION[],
	created_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (owner_id, base_name)
);`

// Store is the Postgres-backed KPI index.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to databaseURL and ensures the kpi_records table exists.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create kpi_records table: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Upsert writes e, replacing any entry with the same owner and base name.
func (s *Store) Upsert(ctx context.Context, e Entry) error {
	parsed, err := json.Marshal(e.ParsedValues)
	if err != nil {
		return fmt.Errorf("failed to marshal parsed values: %w", err)
	}
	kpis, err := json.Marshal(e.KPIs)
	if err != nil {
		return fmt.Errorf("failed to marshal kpis: %w", err)
	}

	query := `
		INSERT INTO kpi_records (owner_id, base_name, source_key, checksum, parsed_values, kpis, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (owner_id, base_name)
		DO UPDATE SET
			source_key = EXCLUDED.source_key,
			checksum = EXCLUDED.checksum,
			parsed_values = EXCLUDED.parsed_values,
			kpis = EXCLUDED.kpis,
			embedding = EXCLUDED.embedding,
			created_at = EXCLUDED.created_at;
	`

	_, err = s.pool.Exec(ctx, query,
		e.OwnerID, e.BaseName, e.SourceKey, e.Checksum, parsed, kpis, e.Embedding, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert kpi record %s/%s: %w", e.OwnerID, e.BaseName, err)
	}
	return nil
}

// List returns every entry ordered by owner, then base name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT owner_id, base_name, source_key, checksum, parsed_values, kpis, embedding, created_at
		FROM kpi_records
		ORDER BY owner_id, base_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpi records: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var (
			e            Entry
			parsed, kpis []byte
		)
		if err := row.Scan(&e.OwnerID, &e.BaseName, &e.SourceKey, &e.Checksum,
			&parsed, &kpis, &e.Embedding, &e.CreatedAt); err != nil {
			return Entry{}, err
		}
		if err := json.Unmarshal(parsed, &e.ParsedValues); err != nil {
			return Entry{}, fmt.Errorf("parsed values of %s/%s: %w", e.OwnerID, e.BaseName, err)
		}
		if err := json.Unmarshal(kpis, &e.KPIs); err != nil {
			return Entry{}, fmt.Errorf("kpis of %s/%s: %w", e.OwnerID, e.BaseName, err)
		}
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read kpi records: %w", err)
	}
	return entries, nil
}
