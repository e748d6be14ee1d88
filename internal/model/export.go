// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// EXPORT FORMAT
// =============================================================================

// ExportFormat identifies an export rendering format.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatJSON     ExportFormat = "json"
	FormatText     ExportFormat = "txt"

	// FormatPDF is recognized but not implemented by this core.
	// Requesting it is always an explicit error, distinct from an
	// unrecognized format.
	FormatPDF ExportFormat = "pdf"
)

// String returns the string representation of the format.
func (f ExportFormat) String() string {
	return string(f)
}

// Extension returns the file extension for the format, without the dot.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	case FormatText:
		return "txt"
	case FormatPDF:
		return "pdf"
	default:
		return ""
	}
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// ExportOptions configures an export rendering.
type ExportOptions struct {
	Format            ExportFormat `json:"format"`
	IncludeMetadata   bool         `json:"includeMetadata"`
	IncludeSources    bool         `json:"includeSources"`
	IncludeTimestamps bool         `json:"includeTimestamps"`
	DateRange         *DateRange   `json:"dateRange,omitempty"`
	Conversations     []string     `json:"conversations,omitempty"` // Conversation ids; empty = all
}

// =============================================================================
// EXPORT RESULT
// =============================================================================

// ExportResult is a completed export: the rendered content plus a download
// handle that expires 24 hours after creation.
type ExportResult struct {
	ID        string       `json:"id"`
	Format    ExportFormat `json:"format"`
	Filename  string       `json:"filename"`
	Size      int          `json:"size"` // Bytes
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`

	// Content is the rendered document. It is not serialized; the
	// presentation layer is responsible for offering it as a download.
	Content []byte `json:"-"`
}

// Expired reports whether the download handle has expired.
func (r ExportResult) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// =============================================================================
// EXPORT STATUS
// =============================================================================

// ExportStatus tracks the progress of an in-flight export.
type ExportStatus struct {
	IsExporting bool   `json:"isExporting"`
	Progress    int    `json:"progress"` // 0-100
	CurrentFile string `json:"currentFile,omitempty"`
	Error       string `json:"error,omitempty"`
}
