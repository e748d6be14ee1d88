// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders conversations as an indented JSON document. Unlike
// the textual formats, the structure mirrors the model types so the output
// can be re-imported; the options only strip sources, metadata and summary
// when excluded.
type JSONExporter struct{}

// jsonEnvelope is the top-level document shape.
type jsonEnvelope struct {
	ExportDate    time.Time           `json:"exportDate"`
	Options       model.ExportOptions `json:"options"`
	Conversations []jsonConversation  `json:"conversations"`
}

// jsonConversation is a model.Conversation with metadata and summary made
// optional so excluded sections disappear from the output entirely.
type jsonConversation struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	CreatedAt    time.Time                   `json:"createdAt"`
	Messages     []jsonMessage               `json:"messages"`
	LastActivity time.Time                   `json:"lastActivity"`
	Status       model.ConversationStatus    `json:"status"`
	IsFavorite   bool                        `json:"isFavorite"`
	Tags         []string                    `json:"tags"`
	Summary      *model.ConversationSummary  `json:"summary,omitempty"`
	Metadata     *model.ConversationMetadata `json:"metadata,omitempty"`
	Settings     model.ConversationSettings  `json:"settings"`
}

// jsonMessage is a model.Message with sources stripped when excluded.
type jsonMessage struct {
	model.Message
	Sources []model.MessageSource `json:"sources,omitempty"`
}

// Render converts the conversations to indented JSON.
func (e *JSONExporter) Render(conversations []model.Conversation, opts model.ExportOptions) ([]byte, error) {
	env := jsonEnvelope{
		ExportDate:    time.Now().UTC(),
		Options:       opts,
		Conversations: make([]jsonConversation, 0, len(conversations)),
	}

	for i := range conversations {
		conv := &conversations[i]

		jc := jsonConversation{
			ID:           conv.ID,
			Name:         conv.Name,
			CreatedAt:    conv.CreatedAt,
			Messages:     make([]jsonMessage, 0, len(conv.Messages)),
			LastActivity: conv.LastActivity,
			Status:       conv.Status,
			IsFavorite:   conv.IsFavorite,
			Tags:         conv.Tags,
			Settings:     conv.Settings,
		}
		if opts.IncludeMetadata {
			meta := conv.Metadata
			jc.Metadata = &meta
			jc.Summary = conv.Summary
		}

		for j := range conv.Messages {
			jm := jsonMessage{Message: conv.Messages[j]}
			if opts.IncludeSources {
				jm.Sources = conv.Messages[j].Sources
			}
			jm.Message.Sources = nil
			jc.Messages = append(jc.Messages, jm)
		}

		env.Conversations = append(env.Conversations, jc)
	}

	return json.MarshalIndent(env, "", "  ")
}

// FileExtension returns "json".
func (e *JSONExporter) FileExtension() string {
	return "json"
}

// MimeType returns the JSON MIME type.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
