// Package sqlite implements [supernova.KV] on a local SQLite database.
//
// A single kv table holds the session collection and the entitlement
// flag. The pure-Go modernc.org/sqlite driver keeps the binary free of
// cgo.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/supernova"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Interface compliance check.
var _ supernova.KV = (*KV)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

// KV is a SQLite-backed key-value byte store.
type KV struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and bootstraps the
// schema. Parent directories are created as needed.
func Open(path string) (*KV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &KV{db: db}, nil
}

// Get returns the value for key, or [supernova.ErrNotFound] when absent.
func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, supernova.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *KV) Close() error {
	return s.db.Close()
}
