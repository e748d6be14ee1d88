// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// A message submitted by a caller is a draft: ID and Timestamp are empty and
// are assigned by the domain service at append time, never by the caller.
type Message struct {
	// Identity (assigned by the domain service)
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Edit tracking
	Edited   bool       `json:"edited,omitempty"`
	EditedAt *time.Time `json:"editedAt,omitempty"`

	// Generation metadata (assistant messages)
	Tokens         int     `json:"tokens,omitempty"`
	Model          string  `json:"model,omitempty"`
	ProcessingTime float64 `json:"processingTime,omitempty"` // Milliseconds
	Confidence     float64 `json:"confidence,omitempty"`

	// Document references backing the answer
	Sources []MessageSource `json:"sources,omitempty"`

	// User annotations
	Reactions    []MessageReaction `json:"reactions,omitempty"`
	IsBookmarked bool              `json:"isBookmarked,omitempty"`
}

// HasSources reports whether the message carries document references.
func (m *Message) HasSources() bool {
	return len(m.Sources) > 0
}

// Clone returns a deep copy of the message.
func (m *Message) Clone() Message {
	clone := *m
	if m.EditedAt != nil {
		t := *m.EditedAt
		clone.EditedAt = &t
	}
	if m.Sources != nil {
		clone.Sources = make([]MessageSource, len(m.Sources))
		copy(clone.Sources, m.Sources)
	}
	if m.Reactions != nil {
		clone.Reactions = make([]MessageReaction, len(m.Reactions))
		copy(clone.Reactions, m.Reactions)
	}
	return clone
}

// =============================================================================
// MESSAGE SOURCE
// =============================================================================

// MessageSource is a reference to a document chunk backing an answer.
type MessageSource struct {
	ID        string  `json:"id"`
	Filename  string  `json:"filename"`
	Page      int     `json:"page,omitempty"`
	Chunk     string  `json:"chunk"`
	Relevance float64 `json:"relevance"`
}

// =============================================================================
// MESSAGE REACTION
// =============================================================================

// ReactionType identifies the kind of a message reaction.
type ReactionType string

const (
	ReactionLike     ReactionType = "like"
	ReactionDislike  ReactionType = "dislike"
	ReactionBookmark ReactionType = "bookmark"
	ReactionFlag     ReactionType = "flag"
)

// MessageReaction is a user reaction attached to a message.
type MessageReaction struct {
	Type      ReactionType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	UserID    string       `json:"userId,omitempty"`
}
