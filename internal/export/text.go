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
// PLAIN TEXT EXPORTER
// =============================================================================

// TextExporter renders conversations as plain text with ASCII rulers.
type TextExporter struct{}

// Render converts the conversations to plain text.
func (e *TextExporter) Render(conversations []model.Conversation, opts model.ExportOptions) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("EXPORTACIÓN DE CONVERSACIONES\n")
	sb.WriteString("===============================\n\n")
	sb.WriteString(fmt.Sprintf("Fecha de exportación: %s\n", formatTimestamp(time.Now())))
	sb.WriteString(fmt.Sprintf("Conversaciones incluidas: %d\n\n", len(conversations)))

	for i := range conversations {
		conv := &conversations[i]

		sb.WriteString("\n" + strings.Repeat("=", 50) + "\n")
		sb.WriteString(fmt.Sprintf("CONVERSACIÓN %d: %s\n", i+1, conv.Name))
		sb.WriteString(strings.Repeat("=", 50) + "\n\n")

		if opts.IncludeMetadata {
			sb.WriteString(fmt.Sprintf("ID: %s\n", conv.ID))
			sb.WriteString(fmt.Sprintf("Creada: %s\n", formatTimestamp(conv.CreatedAt)))
			sb.WriteString(fmt.Sprintf("Última actividad: %s\n", formatTimestamp(conv.LastActivity)))
			sb.WriteString(fmt.Sprintf("Mensajes: %d\n", conv.Metadata.MessageCount))
			sb.WriteString(fmt.Sprintf("Tags: %s\n\n", tagList(conv.Tags)))
		}

		for j := range conv.Messages {
			msg := &conv.Messages[j]

			sb.WriteString("\n" + strings.Repeat("-", 30) + "\n")
			sb.WriteString(fmt.Sprintf("%s %d", roleUpper(msg.Role), j+1))
			if opts.IncludeTimestamps {
				sb.WriteString(" - " + formatTimestamp(msg.Timestamp))
			}
			sb.WriteString("\n" + strings.Repeat("-", 30) + "\n")
			sb.WriteString(msg.Content + "\n")

			if opts.IncludeSources && msg.HasSources() {
				sb.WriteString("\nFUENTES:\n")
				for _, src := range msg.Sources {
					sb.WriteString(sourceLine(src))
				}
			}
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns "txt".
func (e *TextExporter) FileExtension() string {
	return "txt"
}

// MimeType returns the plain text MIME type.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}

// roleUpper returns the uppercase role label for text exports.
func roleUpper(role model.Role) string {
	if role == model.RoleUser {
		return "USUARIO"
	}
	return "ASISTENTE"
}
