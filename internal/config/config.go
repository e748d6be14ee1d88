// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete trainrag configuration.
type Config struct {
	// Log level: "debug", "info", "warn", "error"
	LogLevel string `toml:"log_level"`

	Storage   StorageConfig   `toml:"storage"`
	Search    SearchConfig    `toml:"search"`
	Summary   SummaryConfig   `toml:"summary"`
	Export    ExportConfig    `toml:"export"`
	Retention RetentionConfig `toml:"retention"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `toml:"backend"`
	// Path is the storage directory (file backend) or database file
	// (sqlite backend). Empty means ~/.trainrag/data.
	Path string `toml:"path"`
}

// SearchConfig tunes search behavior.
type SearchConfig struct {
	// MaxResults caps how many results a search returns (0 = unlimited).
	MaxResults int `toml:"max_results"`
}

// SummaryConfig tunes summary generation.
type SummaryConfig struct {
	// AutoSummary generates a summary automatically once a conversation
	// reaches MinMessages.
	AutoSummary bool `toml:"auto_summary"`
	MinMessages int  `toml:"min_messages"`
}

// ExportConfig sets export defaults.
type ExportConfig struct {
	// DefaultFormat is "markdown", "json" or "txt".
	DefaultFormat string `toml:"default_format"`
	// OutputDir is where exported files are written. Empty means the
	// current working directory.
	OutputDir string `toml:"output_dir"`
}

// RetentionConfig drives automatic archival and deletion of stale
// conversations at startup.
type RetentionConfig struct {
	AutoArchive      bool `toml:"auto_archive"`
	ArchiveAfterDays int  `toml:"archive_after_days"`
	AutoDelete       bool `toml:"auto_delete"`
	DeleteAfterDays  int  `toml:"delete_after_days"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Storage: StorageConfig{
			Backend: "file",
		},
		Search: SearchConfig{
			MaxResults: 0,
		},
		Summary: SummaryConfig{
			AutoSummary: true,
			MinMessages: 4,
		},
		Export: ExportConfig{
			DefaultFormat: "markdown",
		},
		Retention: RetentionConfig{
			AutoArchive:      false,
			ArchiveAfterDays: 90,
			AutoDelete:       false,
			DeleteAfterDays:  365,
		},
	}
}

// ConfigDir returns the trainrag configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".trainrag"), nil
}

// ConfigPath returns the TOML config file path, honoring $TRAINRAG_CONFIG.
func ConfigPath() (string, error) {
	if p := os.Getenv("TRAINRAG_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataPath resolves the storage path, falling back to the default data
// location under the config directory.
func (c *Config) DataPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == "sqlite" {
		return filepath.Join(dir, "data", "trainrag.db"), nil
	}
	return filepath.Join(dir, "data"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file if present, applies environment overrides and
// validates. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides lets environment variables override file settings.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TRAINRAG_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TRAINRAG_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("TRAINRAG_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("TRAINRAG_EXPORT_FORMAT"); v != "" {
		c.Export.DefaultFormat = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError is one configuration validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.LogLevel),
		})
	}

	validBackends := map[string]bool{"file": true, "sqlite": true}
	if !validBackends[strings.ToLower(c.Storage.Backend)] {
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite", c.Storage.Backend),
		})
	}

	validFormats := map[string]bool{"markdown": true, "json": true, "txt": true}
	if !validFormats[strings.ToLower(c.Export.DefaultFormat)] {
		errs = append(errs, ValidationError{
			Field:   "export.default_format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: markdown, json, txt", c.Export.DefaultFormat),
		})
	}

	if c.Search.MaxResults < 0 {
		errs = append(errs, ValidationError{
			Field:   "search.max_results",
			Message: "cannot be negative",
		})
	}
	if c.Summary.MinMessages < 0 {
		errs = append(errs, ValidationError{
			Field:   "summary.min_messages",
			Message: "cannot be negative",
		})
	}
	if c.Retention.ArchiveAfterDays < 0 {
		errs = append(errs, ValidationError{
			Field:   "retention.archive_after_days",
			Message: "cannot be negative",
		})
	}
	if c.Retention.DeleteAfterDays < 0 {
		errs = append(errs, ValidationError{
			Field:   "retention.delete_after_days",
			Message: "cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
