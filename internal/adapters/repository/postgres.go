package repository

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/standards-dev/propdash/pkg/metrics"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore reads contributor rollup documents from a jsonb column.
// The pool is created once per process and closed at shutdown; all queries
// are point-in-time reads with no transactional discipline required.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a pooled connection, verifies it, and applies
// pending schema migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err := migrateSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// migrateSchema applies the embedded migrations to the latest version.
func migrateSchema(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}
	migrationFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("access migrations directory: %w", err)
	}
	source, err := iofs.New(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "propdash", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// ListRollups returns every stored document.
func (s *PostgresStore) ListRollups(ctx context.Context) ([]map[string]any, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM contributor_rollups ORDER BY handle`)
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var docs []map[string]any
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			metrics.RecordStoreError()
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		doc, err := decodeDoc(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return docs, nil
}

// GetRollup returns the document for one handle.
func (s *PostgresStore) GetRollup(ctx context.Context, handle string) (map[string]any, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM contributor_rollups WHERE handle = $1`, handle).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return decodeDoc(raw)
}

// Count returns the number of stored contributors; zero on query failure.
func (s *PostgresStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM contributor_rollups`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// decodeDoc unmarshals one jsonb document. UseNumber keeps counts as
// json.Number so the normalizer can distinguish malformed values from
// float truncation.
func decodeDoc(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode rollup document: %w", err)
	}
	return doc, nil
}
