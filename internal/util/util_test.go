// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"shorter than max", "hola", 10, "hola"},
		{"exactly max", "hola", 4, "hola"},
		{"truncated with ellipsis", "hola mundo", 7, "hola..."},
		{"zero max", "hola", 0, ""},
		{"tiny max", "hola", 2, "ho"},
		{"multibyte safe", "áéíóúñ", 5, "áé..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.maxRunes); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "data.json")

	if err := AtomicWriteFile(path, []byte("uno"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "uno" {
		t.Errorf("content = %q, want %q", got, "uno")
	}

	// Overwrite replaces atomically.
	if err := AtomicWriteFile(path, []byte("dos"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite: %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != "dos" {
		t.Errorf("content after overwrite = %q, want %q", got, "dos")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
