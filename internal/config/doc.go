// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for trainrag.
//
// Configuration is TOML with built-in defaults and environment variable
// overrides. File location (in order of precedence):
//   - $TRAINRAG_CONFIG
//   - ~/.trainrag/config.toml
//   - Built-in defaults
package config
