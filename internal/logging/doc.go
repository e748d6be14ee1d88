// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging defines the logging sink capability consumed by the core.
//
// The store and domain service only ever see the narrow Sink interface;
// the logrus-backed implementation lives here so no other package imports
// a logging library directly.
package logging
