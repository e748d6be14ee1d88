// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/jeranaias/trainrag/internal/logging"
	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// SERVICE
// =============================================================================

// Service is the stateless conversation domain service.
type Service struct {
	log  logging.Sink
	opts Options
}

// Options tunes service behavior.
type Options struct {
	// MaxSearchResults caps the result list per search; 0 means unlimited.
	MaxSearchResults int
}

// NewService creates a domain service logging to the given sink.
func NewService(log logging.Sink) *Service {
	return NewServiceWith(log, Options{})
}

// NewServiceWith is NewService with explicit options.
func NewServiceWith(log logging.Sink, opts Options) *Service {
	if log == nil {
		log = logging.NopSink{}
	}
	return &Service{log: log, opts: opts}
}

// =============================================================================
// CONVERSATION CREATION
// =============================================================================

// CreateConversation builds a fresh conversation. When name is empty, a
// default localized name is assigned ("Conversación <date>").
func (s *Service) CreateConversation(name string) model.Conversation {
	now := time.Now()
	if name == "" {
		name = "Conversación " + now.Format("2/1/2006")
	}

	conv := model.Conversation{
		ID:           model.NewID(),
		Name:         name,
		Messages:     []model.Message{},
		CreatedAt:    now,
		LastActivity: now,
		Status:       model.StatusActive,
		IsFavorite:   false,
		Tags:         []string{},
		Metadata: model.ConversationMetadata{
			DocumentsReferenced: []string{},
			ModelsUsed:          []string{},
		},
		Settings: model.DefaultSettings(),
	}

	s.log.Info("conversación creada", logging.Fields{
		"conversationId": conv.ID,
		"name":           conv.Name,
	})

	return conv
}

// =============================================================================
// MESSAGE CREATION
// =============================================================================

// NewMessage assigns identity to a message draft. The draft's ID and
// Timestamp are always overwritten here; callers never supply them.
//
// The returned message is not appended anywhere: the store splices it into
// the conversation's message list and triggers metadata recomputation.
func (s *Service) NewMessage(conversationID string, draft model.Message) model.Message {
	msg := draft.Clone()
	msg.ID = model.NewID()
	msg.Timestamp = time.Now()

	s.log.Info("mensaje agregado a conversación", logging.Fields{
		"conversationId": conversationID,
		"messageId":      msg.ID,
		"role":           msg.Role,
		"contentLength":  len(msg.Content),
	})

	return msg
}

// =============================================================================
// METADATA RECOMPUTATION
// =============================================================================

// UpdateMetadata recomputes the conversation's derived metadata in place and
// bumps LastActivity. It must be called after any mutation of the message
// list. The recomputation itself is idempotent; only LastActivity advances
// on repeated calls.
func (s *Service) UpdateMetadata(conv *model.Conversation) {
	msgs := conv.Messages

	totalTokens := 0
	errorCount := 0
	for i := range msgs {
		totalTokens += msgs[i].Tokens
		// Known narrow heuristic: counts assistant messages whose content
		// contains the literal substring "Error", case-sensitive. Messages
		// legitimately discussing the word are miscounted.
		if msgs[i].Role == model.RoleAssistant && strings.Contains(msgs[i].Content, "Error") {
			errorCount++
		}
	}

	conv.Metadata = model.ConversationMetadata{
		MessageCount:        len(msgs),
		TotalTokens:         totalTokens,
		AvgResponseTime:     averageResponseTime(msgs),
		DocumentsReferenced: documentReferences(msgs),
		ModelsUsed:          modelsUsed(msgs),
		ErrorCount:          errorCount,
		LastBackup:          conv.Metadata.LastBackup,
	}
	conv.LastActivity = time.Now()
}

// averageResponseTime is the mean ProcessingTime over messages that report
// one, or 0 when none do.
func averageResponseTime(msgs []model.Message) float64 {
	var sum float64
	var n int
	for i := range msgs {
		if msgs[i].ProcessingTime > 0 {
			sum += msgs[i].ProcessingTime
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// documentReferences collects the distinct source filenames across all
// messages, in first-seen order.
func documentReferences(msgs []model.Message) []string {
	seen := make(map[string]struct{})
	docs := []string{}
	for i := range msgs {
		for _, src := range msgs[i].Sources {
			if _, ok := seen[src.Filename]; ok {
				continue
			}
			seen[src.Filename] = struct{}{}
			docs = append(docs, src.Filename)
		}
	}
	return docs
}

// modelsUsed collects the distinct model identifiers across all messages,
// excluding empty ones, in first-seen order.
func modelsUsed(msgs []model.Message) []string {
	seen := make(map[string]struct{})
	models := []string{}
	for i := range msgs {
		if msgs[i].Model == "" {
			continue
		}
		if _, ok := seen[msgs[i].Model]; ok {
			continue
		}
		seen[msgs[i].Model] = struct{}{}
		models = append(models, msgs[i].Model)
	}
	return models
}
