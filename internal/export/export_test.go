// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/trainrag/internal/model"
)

func fixtureConversations() []model.Conversation {
	created := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	return []model.Conversation{
		{
			ID:        "conv-1",
			Name:      "Contrato laboral",
			CreatedAt: created,
			Messages: []model.Message{
				{
					ID:        "m1",
					Role:      model.RoleUser,
					Timestamp: created.Add(time.Minute),
					Content:   "¿Cuántos días de vacaciones otorga el contrato?",
				},
				{
					ID:        "m2",
					Role:      model.RoleAssistant,
					Timestamp: created.Add(2 * time.Minute),
					Content:   "El contrato otorga 22 días hábiles.",
					Sources: []model.MessageSource{
						{ID: "s1", Filename: "contrato.pdf", Page: 12},
						{ID: "s2", Filename: "anexo.pdf"},
					},
				},
			},
			LastActivity: created.Add(2 * time.Minute),
			Status:       model.StatusActive,
			Tags:         []string{"work"},
			Summary: &model.ConversationSummary{
				ID:      "sum-1",
				Content: "Consulta sobre vacaciones del contrato.",
			},
			Metadata: model.ConversationMetadata{MessageCount: 2},
			Settings: model.DefaultSettings(),
		},
	}
}

func allOptions(format model.ExportFormat) model.ExportOptions {
	return model.ExportOptions{
		Format:            format,
		IncludeMetadata:   true,
		IncludeSources:    true,
		IncludeTimestamps: true,
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

func TestExportPDFNotImplemented(t *testing.T) {
	_, err := Export(fixtureConversations(), allOptions(model.FormatPDF))
	assert.ErrorIs(t, err, ErrPDFNotImplemented)
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export(fixtureConversations(), allOptions(model.ExportFormat("docx")))

	// An unknown format is a distinct error from unimplemented PDF.
	assert.NotErrorIs(t, err, ErrPDFNotImplemented)
	var ufe *UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, model.ExportFormat("docx"), ufe.Format)
}

func TestExportResultEnvelope(t *testing.T) {
	before := time.Now()
	result, err := Export(fixtureConversations(), allOptions(model.FormatMarkdown))
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, model.FormatMarkdown, result.Format)
	assert.True(t, strings.HasPrefix(result.Filename, "conversaciones_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".md"))
	assert.Equal(t, len(result.Content), result.Size)
	assert.WithinDuration(t, before, result.CreatedAt, time.Second)
	assert.Equal(t, result.CreatedAt.Add(24*time.Hour), result.ExpiresAt)
	assert.False(t, result.Expired(result.CreatedAt.Add(23*time.Hour)))
	assert.True(t, result.Expired(result.CreatedAt.Add(25*time.Hour)))
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 7, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "conversaciones_2025-07-02.json", Filename(model.FormatJSON, at))
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownLayout(t *testing.T) {
	result, err := Export(fixtureConversations(), allOptions(model.FormatMarkdown))
	require.NoError(t, err)
	content := string(result.Content)

	assert.Contains(t, content, "# Exportación de Conversaciones")
	assert.Contains(t, content, "**Fecha de exportación:**")
	assert.Contains(t, content, "**Conversaciones incluidas:** 1")
	assert.Contains(t, content, "## Contrato laboral")
	assert.Contains(t, content, "**ID:** conv-1")
	assert.Contains(t, content, "**Tags:** work")
	assert.Contains(t, content, "### Resumen\nConsulta sobre vacaciones del contrato.")
	assert.Contains(t, content, "#### 👤 Usuario")
	assert.Contains(t, content, "#### 🤖 Asistente")
	assert.Contains(t, content, "**Fuentes:**")
	assert.Contains(t, content, "- contrato.pdf (página 12)")
	assert.Contains(t, content, "- anexo.pdf (página N/A)")
	assert.Contains(t, content, "---\n")
}

func TestMarkdownWithoutMetadata(t *testing.T) {
	opts := allOptions(model.FormatMarkdown)
	opts.IncludeMetadata = false
	opts.IncludeSources = false
	opts.IncludeTimestamps = false

	result, err := Export(fixtureConversations(), opts)
	require.NoError(t, err)
	content := string(result.Content)

	assert.NotContains(t, content, "**ID:**")
	assert.NotContains(t, content, "### Resumen")
	assert.NotContains(t, content, "**Fuentes:**")
	assert.Contains(t, content, "#### 👤 Usuario\n")
}

func TestMarkdownEmptyTags(t *testing.T) {
	convs := fixtureConversations()
	convs[0].Tags = nil

	result, err := Export(convs, allOptions(model.FormatMarkdown))
	require.NoError(t, err)
	assert.Contains(t, string(result.Content), "**Tags:** Ninguno")
}

// =============================================================================
// PLAIN TEXT
// =============================================================================

func TestTextLayout(t *testing.T) {
	result, err := Export(fixtureConversations(), allOptions(model.FormatText))
	require.NoError(t, err)
	content := string(result.Content)

	assert.Contains(t, content, "EXPORTACIÓN DE CONVERSACIONES")
	assert.Contains(t, content, "Fecha de exportación:")
	assert.Contains(t, content, "CONVERSACIÓN 1: Contrato laboral")
	assert.Contains(t, content, strings.Repeat("=", 50))
	assert.Contains(t, content, strings.Repeat("-", 30))
	assert.Contains(t, content, "USUARIO 1")
	assert.Contains(t, content, "ASISTENTE 2")
	assert.Contains(t, content, "FUENTES:")
	assert.Contains(t, content, "- contrato.pdf (página 12)")
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONRoundTrip(t *testing.T) {
	result, err := Export(fixtureConversations(), allOptions(model.FormatJSON))
	require.NoError(t, err)

	var doc struct {
		ExportDate    time.Time           `json:"exportDate"`
		Options       model.ExportOptions `json:"options"`
		Conversations []struct {
			ID       string                      `json:"id"`
			Messages []model.Message             `json:"messages"`
			Summary  *model.ConversationSummary  `json:"summary"`
			Metadata *model.ConversationMetadata `json:"metadata"`
		} `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(result.Content, &doc))

	assert.False(t, doc.ExportDate.IsZero())
	assert.Equal(t, model.FormatJSON, doc.Options.Format)
	require.Len(t, doc.Conversations, 1)
	conv := doc.Conversations[0]
	assert.Equal(t, "conv-1", conv.ID)
	require.Len(t, conv.Messages, 2)
	assert.Len(t, conv.Messages[1].Sources, 2)
	require.NotNil(t, conv.Summary)
	require.NotNil(t, conv.Metadata)
	assert.Equal(t, 2, conv.Metadata.MessageCount)
}

func TestJSONStripsExcludedSections(t *testing.T) {
	opts := allOptions(model.FormatJSON)
	opts.IncludeMetadata = false
	opts.IncludeSources = false

	result, err := Export(fixtureConversations(), opts)
	require.NoError(t, err)

	content := string(result.Content)
	assert.NotContains(t, content, `"summary"`)
	assert.NotContains(t, content, `"metadata"`)
	assert.NotContains(t, content, `"sources"`)
}

// =============================================================================
// ERRORS
// =============================================================================

func TestPDFIsNotLumpedWithUnknown(t *testing.T) {
	_, pdfErr := ForFormat(model.FormatPDF)
	_, unknownErr := ForFormat(model.ExportFormat("rtf"))

	assert.True(t, errors.Is(pdfErr, ErrPDFNotImplemented))
	assert.False(t, errors.Is(unknownErr, ErrPDFNotImplemented))
}
