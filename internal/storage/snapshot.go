// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// SNAPSHOT
// =============================================================================

// SnapshotKey is the KV key the conversation state lives under.
const SnapshotKey = "chat-conversations"

// Snapshot is the complete persisted conversation state. Volatile concerns
// (active selection, search results, in-flight export status) are
// deliberately absent; they are rebuilt on load.
type Snapshot struct {
	Conversations []model.Conversation `json:"conversations"`
	AvailableTags []model.Tag          `json:"availableTags"`
	Favorites     []model.Favorite     `json:"favorites"`
	LastSaved     time.Time            `json:"lastSaved"`
}

// EncodeSnapshot serializes a snapshot, stamping LastSaved.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	s.LastSaved = time.Now()
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot previously produced by EncodeSnapshot.
// Nil slices are normalized to empty ones so callers never range over nil
// after a partial document.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Conversations == nil {
		s.Conversations = []model.Conversation{}
	}
	if s.AvailableTags == nil {
		s.AvailableTags = []model.Tag{}
	}
	if s.Favorites == nil {
		s.Favorites = []model.Favorite{}
	}
	return s, nil
}
