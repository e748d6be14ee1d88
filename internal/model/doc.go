// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// search and export.
//
// # Key Types
//
//   - Conversation: a named, ordered collection of messages with lifecycle
//     status, tags, derived metadata and per-conversation settings
//   - Message: a single chat message with optional document sources
//   - ConversationSummary: a generated synopsis of a conversation
//   - SearchQuery / SearchResults: deterministic search input and output
//   - ExportOptions / ExportResult: export rendering input and output
//
// All date fields are time.Time values and serialize to ISO8601 strings,
// so a persisted snapshot round-trips without a separate revival step.
package model
