// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "markdown", cfg.Export.DefaultFormat)
	assert.True(t, cfg.Summary.AutoSummary)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("TRAINRAG_CONFIG", filepath.Join(t.TempDir(), "no-such.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Storage.Backend, cfg.Storage.Backend)
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log_level = "debug"

[storage]
backend = "sqlite"
path = "/tmp/trainrag-test.db"

[export]
default_format = "txt"

[retention]
auto_archive = true
archive_after_days = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TRAINRAG_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/trainrag-test.db", cfg.Storage.Path)
	assert.Equal(t, "txt", cfg.Export.DefaultFormat)
	assert.True(t, cfg.Retention.AutoArchive)
	assert.Equal(t, 30, cfg.Retention.ArchiveAfterDays)
	// Unset sections keep defaults.
	assert.True(t, cfg.Summary.AutoSummary)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRAINRAG_CONFIG", filepath.Join(t.TempDir(), "no-such.toml"))
	t.Setenv("TRAINRAG_LOG_LEVEL", "warn")
	t.Setenv("TRAINRAG_STORAGE_BACKEND", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	cfg.Storage.Backend = "redis"
	cfg.Export.DefaultFormat = "pdf"
	cfg.Retention.ArchiveAfterDays = -1

	err := cfg.Validate()
	require.Error(t, err)

	var errs ValidateErrors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 4)
}

func TestDataPathDefaults(t *testing.T) {
	cfg := Default()

	path, err := cfg.DataPath()
	require.NoError(t, err)
	assert.Contains(t, path, ".trainrag")

	cfg.Storage.Backend = "sqlite"
	path, err = cfg.DataPath()
	require.NoError(t, err)
	assert.Contains(t, path, "trainrag.db")

	cfg.Storage.Path = "/explicit/path"
	path, err = cfg.DataPath()
	require.NoError(t, err)
	assert.Equal(t, "/explicit/path", path)
}
