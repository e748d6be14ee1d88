// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// =============================================================================
// SQLITE BACKEND
// =============================================================================

// SQLiteKV stores keys in an embedded SQLite database. Preferable to the
// file backend when several keys are updated frequently, since writes are
// transactional and the database handles its own durability.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// The modernc driver does not support concurrent writers on one
	// connection pool; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

// Get returns the stored value for key, or ErrKeyNotFound.
func (kv *SQLiteKV) Get(key string) ([]byte, error) {
	var value []byte
	err := kv.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key.
func (kv *SQLiteKV) Set(key string, value []byte) error {
	const q = `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := kv.db.Exec(q, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key succeeds.
func (kv *SQLiteKV) Delete(key string) error {
	if _, err := kv.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (kv *SQLiteKV) Close() error {
	return kv.db.Close()
}
