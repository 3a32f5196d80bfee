// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlite provides a SQLite-backed configuration store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bettyblocks/mcp-gateway/pkg/configstore"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed configuration store.
type Store struct {
	db *sql.DB
}

// New opens (and if needed creates) a SQLite configuration store at path.
// Use ":memory:" for an ephemeral store.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runtime_config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("sqlite create tables: %w", err)
	}
	return nil
}

// Set upserts a configuration value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runtime_config (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}

// GetAll returns all configuration entries ordered by key.
func (s *Store) GetAll(ctx context.Context) ([]configstore.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM runtime_config ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("sqlite get all: %w", err)
	}
	defer rows.Close()

	var out []configstore.Entry
	for rows.Next() {
		var e configstore.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("sqlite scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite rows: %w", err)
	}
	return out, nil
}
