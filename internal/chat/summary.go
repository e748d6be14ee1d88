// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/trainrag/internal/logging"
	"github.com/jeranaias/trainrag/internal/model"
	"github.com/jeranaias/trainrag/internal/relevance"
	"github.com/jeranaias/trainrag/internal/util"
)

// =============================================================================
// SUMMARY GENERATION
// =============================================================================

const (
	summaryMaxTopics     = 10
	summaryMaxQuestions  = 10
	synopsisMaxQuestions = 5
	questionMaxLength    = 100
)

// GenerateSummary produces an extractive summary of the conversation:
// key topics across all messages, the leading user messages, the distinct
// documents referenced, plus a confidence estimate. The token count is
// copied from the conversation metadata as of generation time.
func (s *Service) GenerateSummary(conv *model.Conversation) *model.ConversationSummary {
	topics := keyTopics(conv.Messages)
	questions := mainQuestions(conv.Messages)

	sum := &model.ConversationSummary{
		ID:            model.NewID(),
		Content:       summaryText(conv, topics),
		KeyTopics:     topics,
		MainQuestions: questions,
		DocumentsUsed: documentReferences(conv.Messages),
		CreatedAt:     time.Now(),
		TokenCount:    conv.Metadata.TotalTokens,
		Confidence:    summaryConfidence(conv),
	}

	s.log.Info("resumen generado", logging.Fields{
		"conversationId": conv.ID,
		"topics":         len(sum.KeyTopics),
		"confidence":     sum.Confidence,
	})

	return sum
}

// summaryText renders the summary content template. The question list shown
// inline is shorter and truncated for display; MainQuestions carries the
// full entries.
func summaryText(conv *model.Conversation, topics []string) string {
	topicPart := "varios temas"
	if len(topics) > 0 {
		topicPart = strings.Join(topics, ", ")
	}

	questions := []string{}
	for i := range conv.Messages {
		if conv.Messages[i].Role != model.RoleUser {
			continue
		}
		questions = append(questions, util.TruncateRunes(conv.Messages[i].Content, questionMaxLength))
		if len(questions) == synopsisMaxQuestions {
			break
		}
	}

	text := fmt.Sprintf("Esta conversación incluye %d mensajes sobre temas como: %s.",
		len(conv.Messages), topicPart)
	if len(questions) > 0 {
		text += " Las principales consultas fueron: " + strings.Join(questions, ". ")
	}
	return text
}

// keyTopics extracts the dominant keywords from the concatenated content of
// every message, user and assistant alike.
func keyTopics(msgs []model.Message) []string {
	var b strings.Builder
	for i := range msgs {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(msgs[i].Content)
	}
	return relevance.Keywords(b.String(), summaryMaxTopics)
}

// mainQuestions returns the earliest user messages verbatim.
func mainQuestions(msgs []model.Message) []string {
	questions := []string{}
	for i := range msgs {
		if msgs[i].Role != model.RoleUser {
			continue
		}
		questions = append(questions, msgs[i].Content)
		if len(questions) == summaryMaxQuestions {
			break
		}
	}
	return questions
}

// summaryConfidence scores how trustworthy the extractive summary is likely
// to be. Longer conversations and source-backed answers raise it; recorded
// errors keep the "clean run" bonus off. Clamped to [0, 1].
func summaryConfidence(conv *model.Conversation) float64 {
	confidence := 0.5

	if len(conv.Messages) > 10 {
		confidence += 0.2
	}
	if len(conv.Messages) > 20 {
		confidence += 0.1
	}

	withSources := 0
	for i := range conv.Messages {
		if conv.Messages[i].HasSources() {
			withSources++
		}
	}
	bonus := 0.05 * float64(withSources)
	if bonus > 0.2 {
		bonus = 0.2
	}
	confidence += bonus

	if conv.Metadata.ErrorCount == 0 {
		confidence += 0.1
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}
