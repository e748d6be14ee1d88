// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

// Fields carries structured context for a log entry.
type Fields map[string]any

// Sink is the logging capability consumed by the core packages.
// Implementations must be safe for concurrent use.
type Sink interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
}

// =============================================================================
// NOP SINK
// =============================================================================

// NopSink discards everything. Useful for tests.
type NopSink struct{}

func (NopSink) Debug(string, Fields) {}
func (NopSink) Info(string, Fields)  {}
func (NopSink) Warn(string, Fields)  {}
func (NopSink) Error(string, Fields) {}
