// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders conversations as a single Markdown document with
// a conversation section per entry and horizontal rules between them.
type MarkdownExporter struct{}

// Render converts the conversations to Markdown.
func (e *MarkdownExporter) Render(conversations []model.Conversation, opts model.ExportOptions) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("# Exportación de Conversaciones\n\n")
	sb.WriteString(fmt.Sprintf("**Fecha de exportación:** %s\n", formatTimestamp(time.Now())))
	sb.WriteString(fmt.Sprintf("**Conversaciones incluidas:** %d\n\n", len(conversations)))

	for i := range conversations {
		conv := &conversations[i]

		sb.WriteString(fmt.Sprintf("## %s\n\n", conv.Name))

		if opts.IncludeMetadata {
			sb.WriteString(fmt.Sprintf("**ID:** %s\n", conv.ID))
			sb.WriteString(fmt.Sprintf("**Creada:** %s\n", formatTimestamp(conv.CreatedAt)))
			sb.WriteString(fmt.Sprintf("**Última actividad:** %s\n", formatTimestamp(conv.LastActivity)))
			sb.WriteString(fmt.Sprintf("**Mensajes:** %d\n", conv.Metadata.MessageCount))
			sb.WriteString(fmt.Sprintf("**Tags:** %s\n\n", tagList(conv.Tags)))

			if conv.Summary != nil {
				sb.WriteString(fmt.Sprintf("### Resumen\n%s\n\n", conv.Summary.Content))
			}
		}

		sb.WriteString("### Mensajes\n\n")

		for j := range conv.Messages {
			msg := &conv.Messages[j]

			sb.WriteString(fmt.Sprintf("#### %s", roleEmoji(msg.Role)))
			if opts.IncludeTimestamps {
				sb.WriteString(" - " + formatTimestamp(msg.Timestamp))
			}
			sb.WriteString("\n\n")
			sb.WriteString(msg.Content)
			sb.WriteString("\n\n")

			if opts.IncludeSources && msg.HasSources() {
				sb.WriteString("**Fuentes:**\n")
				for _, src := range msg.Sources {
					sb.WriteString(sourceLine(src))
				}
				sb.WriteString("\n")
			}
		}

		sb.WriteString("---\n\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns "md".
func (e *MarkdownExporter) FileExtension() string {
	return "md"
}

// MimeType returns the Markdown MIME type.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// roleEmoji returns the Markdown role heading label.
func roleEmoji(role model.Role) string {
	if role == model.RoleUser {
		return "👤 Usuario"
	}
	return "🤖 Asistente"
}
