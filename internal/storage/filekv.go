// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/trainrag/internal/util"
)

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileKV stores each key as a JSON file under a directory. Writes go
// through a temp file plus rename so readers never observe a partial value.
type FileKV struct {
	dir string
}

// NewFileKV creates the directory if needed and returns a file-backed KV.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Path returns the file path a key maps to.
func (kv *FileKV) Path(key string) string {
	return filepath.Join(kv.dir, sanitizeKey(key)+".json")
}

// Get returns the file contents for key, or ErrKeyNotFound.
func (kv *FileKV) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(kv.Path(key))
	if os.IsNotExist(err) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set atomically replaces the file contents for key.
func (kv *FileKV) Set(key string, value []byte) error {
	if err := util.AtomicWriteFile(kv.Path(key), value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key. A missing file is not an error.
func (kv *FileKV) Delete(key string) error {
	err := os.Remove(kv.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (kv *FileKV) Close() error {
	return nil
}

// sanitizeKey maps a key to a safe filename component.
func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "..", "_", ":", "_")
	return r.Replace(key)
}
