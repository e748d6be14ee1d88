// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jeranaias/trainrag/internal/model"
)

// SystemTags returns the built-in tag set seeded into a fresh state.
// System tags cannot be deleted by the user.
func SystemTags() []model.Tag {
	now := time.Now()
	return []model.Tag{
		{
			ID:          "important",
			Name:        "Importante",
			Color:       "#ef4444",
			Description: "Conversaciones importantes",
			CreatedAt:   now,
			IsSystemTag: true,
		},
		{
			ID:          "work",
			Name:        "Trabajo",
			Color:       "#3b82f6",
			Description: "Conversaciones relacionadas con trabajo",
			CreatedAt:   now,
			IsSystemTag: true,
		},
		{
			ID:          "research",
			Name:        "Investigación",
			Color:       "#10b981",
			Description: "Conversaciones de investigación",
			CreatedAt:   now,
			IsSystemTag: true,
		},
	}
}
