// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// TAG TYPE
// =============================================================================

// Tag is a named label that conversations reference by id.
//
// Referential integrity is not enforced: a conversation may carry a tag id
// that is absent from the registry.
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UsageCount  int       `json:"usageCount"`
	IsSystemTag bool      `json:"isSystemTag"`
}

// =============================================================================
// FAVORITE TYPE
// =============================================================================

// FavoriteType identifies what a favorite points at.
type FavoriteType string

const (
	FavoriteConversation FavoriteType = "conversation"
	FavoriteMessage      FavoriteType = "message"
)

// Favorite is a pinned reference to a conversation or message.
//
// Uniqueness over (Type, TargetID) is maintained procedurally: any existing
// entry for the same target is removed before a new one is added.
type Favorite struct {
	ID        string       `json:"id"`
	Type      FavoriteType `json:"type"`
	TargetID  string       `json:"targetId"`
	CreatedAt time.Time    `json:"createdAt"`
	Note      string       `json:"note,omitempty"`
}
