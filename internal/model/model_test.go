// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestConversationCloneIsDeep(t *testing.T) {
	now := time.Now()
	orig := Conversation{
		ID:   "c1",
		Name: "original",
		Messages: []Message{
			{ID: "m1", Content: "hola", Sources: []MessageSource{{ID: "s1", Filename: "a.pdf"}}},
		},
		Tags:    []string{"work"},
		Summary: &ConversationSummary{ID: "sum", KeyTopics: []string{"tema"}},
		Metadata: ConversationMetadata{
			DocumentsReferenced: []string{"a.pdf"},
			LastBackup:          &now,
		},
	}

	clone := orig.Clone()
	clone.Messages[0].Content = "cambiado"
	clone.Messages[0].Sources[0].Filename = "b.pdf"
	clone.Tags[0] = "other"
	clone.Summary.KeyTopics[0] = "otro"
	clone.Metadata.DocumentsReferenced[0] = "b.pdf"

	if orig.Messages[0].Content != "hola" {
		t.Error("message content aliased")
	}
	if orig.Messages[0].Sources[0].Filename != "a.pdf" {
		t.Error("message sources aliased")
	}
	if orig.Tags[0] != "work" {
		t.Error("tags aliased")
	}
	if orig.Summary.KeyTopics[0] != "tema" {
		t.Error("summary aliased")
	}
	if orig.Metadata.DocumentsReferenced[0] != "a.pdf" {
		t.Error("metadata aliased")
	}
}

func TestDateRangeContainsInclusive(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	r := DateRange{Start: start, End: end}

	if !r.Contains(start) || !r.Contains(end) {
		t.Error("range endpoints must be inclusive")
	}
	if r.Contains(start.Add(-time.Nanosecond)) {
		t.Error("before start must be outside")
	}
	if r.Contains(end.Add(time.Nanosecond)) {
		t.Error("after end must be outside")
	}
}

func TestValidity(t *testing.T) {
	if !RoleUser.Valid() || !RoleAssistant.Valid() || !RoleSystem.Valid() {
		t.Error("known roles must be valid")
	}
	if Role("tool").Valid() {
		t.Error("unknown role must be invalid")
	}
	if !StatusActive.Valid() || StatusDeleted.Valid() != true {
		t.Error("known statuses must be valid")
	}
	if ConversationStatus("gone").Valid() {
		t.Error("unknown status must be invalid")
	}
}

func TestExportFormatExtension(t *testing.T) {
	tests := map[ExportFormat]string{
		FormatMarkdown:      "md",
		FormatJSON:          "json",
		FormatText:          "txt",
		FormatPDF:           "pdf",
		ExportFormat("doc"): "",
	}
	for format, want := range tests {
		if got := format.Extension(); got != want {
			t.Errorf("Extension(%s) = %q, want %q", format, got, want)
		}
	}
}
