// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders conversations into downloadable documents.
//
// Three formats are implemented (Markdown, JSON and plain text); PDF is
// declared but not implemented and requesting it returns
// ErrPDFNotImplemented. Exporters are pure renderers over conversation
// values; the resulting ExportResult carries the content in memory along
// with a suggested filename and a 24 hour expiry.
package export
