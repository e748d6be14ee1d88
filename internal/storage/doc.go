// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides local persistence for conversation state.
//
// The package exposes a small KV abstraction with two backends: a JSON file
// per key (FileKV, the default) and an embedded SQLite database (SQLiteKV).
// On top of the KV sits the Snapshot codec, which serializes the complete
// persisted state (conversations, tags, favorites) as one JSON document
// under a single key.
//
// A filesystem Watcher is available for the file backend so external edits
// to the snapshot can trigger a reload.
package storage
