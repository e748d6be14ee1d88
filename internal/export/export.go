// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrPDFNotImplemented is returned when a PDF export is requested.
// The format is part of the public surface but has no renderer yet.
var ErrPDFNotImplemented = errors.New("exportación a PDF no implementada aún")

// UnsupportedFormatError is returned for formats outside the known set.
type UnsupportedFormatError struct {
	Format model.ExportFormat
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("formato de exportación no soportado: %s", e.Format)
}

// =============================================================================
// EXPORTER INTERFACE
// =============================================================================

// Exporter renders a set of conversations into one document.
type Exporter interface {
	// Render produces the document body.
	Render(conversations []model.Conversation, opts model.ExportOptions) ([]byte, error)

	// FileExtension returns the extension without a dot (e.g. "md").
	FileExtension() string

	// MimeType returns the MIME type of the rendered document.
	MimeType() string
}

// ForFormat returns the exporter for a format, or an error for PDF and
// unknown formats.
func ForFormat(format model.ExportFormat) (Exporter, error) {
	switch format {
	case model.FormatMarkdown:
		return &MarkdownExporter{}, nil
	case model.FormatJSON:
		return &JSONExporter{}, nil
	case model.FormatText:
		return &TextExporter{}, nil
	case model.FormatPDF:
		return nil, ErrPDFNotImplemented
	default:
		return nil, &UnsupportedFormatError{Format: format}
	}
}

// =============================================================================
// EXPORT ENTRY POINT
// =============================================================================

// Export renders the given conversations per the options and wraps the
// result with identity, filename and expiry. The content is kept in memory;
// writing it out is the caller's concern.
func Export(conversations []model.Conversation, opts model.ExportOptions) (model.ExportResult, error) {
	exp, err := ForFormat(opts.Format)
	if err != nil {
		return model.ExportResult{}, err
	}

	content, err := exp.Render(conversations, opts)
	if err != nil {
		return model.ExportResult{}, err
	}

	now := time.Now()
	return model.ExportResult{
		ID:        model.NewID(),
		Format:    opts.Format,
		Filename:  Filename(opts.Format, now),
		Size:      len(content),
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
		Content:   content,
	}, nil
}

// Filename builds the download filename for an export created at t.
func Filename(format model.ExportFormat, t time.Time) string {
	return fmt.Sprintf("conversaciones_%s.%s", t.UTC().Format("2006-01-02"), format.Extension())
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// formatTimestamp renders times for human-readable export bodies.
func formatTimestamp(t time.Time) string {
	return t.Format("2/1/2006, 15:04:05")
}

// sourceLine renders one cited source as "<filename> (página <n>)".
// A missing page renders as "N/A".
func sourceLine(src model.MessageSource) string {
	page := "N/A"
	if src.Page > 0 {
		page = fmt.Sprintf("%d", src.Page)
	}
	return fmt.Sprintf("- %s (página %s)\n", src.Filename, page)
}

// tagList renders tags comma-separated, or "Ninguno" when empty.
func tagList(tags []string) string {
	if len(tags) == 0 {
		return "Ninguno"
	}
	out := tags[0]
	for _, t := range tags[1:] {
		out += ", " + t
	}
	return out
}
