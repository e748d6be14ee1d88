// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/google/uuid"

// NewID returns a new opaque unique identifier.
// IDs carry no structure; callers must treat them as tokens.
func NewID() string {
	return uuid.New().String()
}
