// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import "errors"

// =============================================================================
// KV INTERFACE
// =============================================================================

// ErrKeyNotFound is returned by Get when the key has never been set.
// Callers distinguish "no saved state yet" from real failures with
// errors.Is.
var ErrKeyNotFound = errors.New("storage: key not found")

// KV is the persistence capability consumed by the store. Implementations
// must be safe for concurrent use.
type KV interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Set writes the value for key, replacing any previous value. The
	// write must be atomic: a crash mid-write never leaves a corrupt
	// value behind.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}
