// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CONVERSATION STATUS
// =============================================================================

// ConversationStatus is the lifecycle state of a conversation.
//
// Every status is directly reachable from every other status via explicit
// status updates; "deleted" is a flag, not removal from the store.
type ConversationStatus string

const (
	StatusActive   ConversationStatus = "active"
	StatusArchived ConversationStatus = "archived"
	StatusDeleted  ConversationStatus = "deleted"
)

// String returns the string representation of the status.
func (s ConversationStatus) String() string {
	return string(s)
}

// Valid reports whether the status is one of the known states.
func (s ConversationStatus) Valid() bool {
	switch s {
	case StatusActive, StatusArchived, StatusDeleted:
		return true
	}
	return false
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a complete chat conversation with history and metadata.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	// Messages, chronological and append-only from the consumer's view
	Messages []Message `json:"messages"`

	// LastActivity is monotonically non-decreasing: bumped on any mutation.
	LastActivity time.Time `json:"lastActivity"`

	Status     ConversationStatus `json:"status"`
	IsFavorite bool               `json:"isFavorite"`
	Tags       []string           `json:"tags"`

	// Summary is set by an explicit summary request and overwritten,
	// never merged, on regeneration.
	Summary *ConversationSummary `json:"summary,omitempty"`

	// Metadata is derived from Messages and recomputable at any time.
	Metadata ConversationMetadata `json:"metadata"`

	Settings ConversationSettings `json:"settings"`
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// HasTag reports whether the conversation carries the given tag id.
func (c *Conversation) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() Conversation {
	clone := *c
	clone.Messages = make([]Message, len(c.Messages))
	for i := range c.Messages {
		clone.Messages[i] = c.Messages[i].Clone()
	}
	if c.Tags != nil {
		clone.Tags = make([]string, len(c.Tags))
		copy(clone.Tags, c.Tags)
	}
	if c.Summary != nil {
		s := c.Summary.Clone()
		clone.Summary = &s
	}
	clone.Metadata = c.Metadata.Clone()
	return clone
}

// =============================================================================
// CONVERSATION METADATA
// =============================================================================

// ConversationMetadata holds derived statistics about a conversation's
// messages. It is never independently authoritative: the domain service
// recomputes it after every message-list mutation.
type ConversationMetadata struct {
	MessageCount        int        `json:"messageCount"`
	TotalTokens         int        `json:"totalTokens"`
	AvgResponseTime     float64    `json:"avgResponseTime"` // Milliseconds
	DocumentsReferenced []string   `json:"documentsReferenced"`
	ModelsUsed          []string   `json:"modelsUsed"`
	ErrorCount          int        `json:"errorCount"`
	LastBackup          *time.Time `json:"lastBackup,omitempty"`
}

// Clone returns a deep copy of the metadata.
func (m ConversationMetadata) Clone() ConversationMetadata {
	clone := m
	if m.DocumentsReferenced != nil {
		clone.DocumentsReferenced = make([]string, len(m.DocumentsReferenced))
		copy(clone.DocumentsReferenced, m.DocumentsReferenced)
	}
	if m.ModelsUsed != nil {
		clone.ModelsUsed = make([]string, len(m.ModelsUsed))
		copy(clone.ModelsUsed, m.ModelsUsed)
	}
	if m.LastBackup != nil {
		t := *m.LastBackup
		clone.LastBackup = &t
	}
	return clone
}

// =============================================================================
// CONVERSATION SUMMARY
// =============================================================================

// ConversationSummary is a generated synopsis of a conversation.
type ConversationSummary struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	KeyTopics     []string  `json:"keyTopics"`
	MainQuestions []string  `json:"mainQuestions"`
	DocumentsUsed []string  `json:"documentsUsed"`
	CreatedAt     time.Time `json:"createdAt"`
	TokenCount    int       `json:"tokenCount"`
	Confidence    float64   `json:"confidence"` // In [0, 1]
}

// Clone returns a deep copy of the summary.
func (s ConversationSummary) Clone() ConversationSummary {
	clone := s
	if s.KeyTopics != nil {
		clone.KeyTopics = make([]string, len(s.KeyTopics))
		copy(clone.KeyTopics, s.KeyTopics)
	}
	if s.MainQuestions != nil {
		clone.MainQuestions = make([]string, len(s.MainQuestions))
		copy(clone.MainQuestions, s.MainQuestions)
	}
	if s.DocumentsUsed != nil {
		clone.DocumentsUsed = make([]string, len(s.DocumentsUsed))
		copy(clone.DocumentsUsed, s.DocumentsUsed)
	}
	return clone
}

// =============================================================================
// CONVERSATION SETTINGS
// =============================================================================

// ConversationSettings holds per-conversation policy.
type ConversationSettings struct {
	AutoSummary   bool         `json:"autoSummary"`
	MaxMessages   int          `json:"maxMessages"`
	RetentionDays int          `json:"retentionDays"`
	ExportFormat  ExportFormat `json:"exportFormat"`
	Notifications bool         `json:"notifications"`
}

// DefaultSettings returns the settings applied to a new conversation.
func DefaultSettings() ConversationSettings {
	return ConversationSettings{
		AutoSummary:   true,
		MaxMessages:   1000,
		RetentionDays: 365,
		ExportFormat:  FormatMarkdown,
		Notifications: true,
	}
}
