// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"github.com/jeranaias/trainrag/internal/chat"
	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// STATE
// =============================================================================

// State is the complete conversation state at one instant. Only
// Conversations, AvailableTags and Favorites survive a restart; everything
// else is session-local and rebuilt with defaults on load.
type State struct {
	Conversations        []model.Conversation
	ActiveConversationID string

	SearchQuery   *model.SearchQuery
	SearchResults *model.SearchResults
	IsSearching   bool

	SelectedTags  []string
	AvailableTags []model.Tag
	Favorites     []model.Favorite

	ViewMode  model.ViewMode
	SortBy    model.SortField
	SortOrder model.SortOrder
	Filters   model.ConversationFilters

	ExportStatus model.ExportStatus
	IsConnected  bool
}

// NewState returns the initial state: no conversations, system tags seeded,
// list view sorted by date descending, active-only filters.
func NewState() State {
	return State{
		Conversations: []model.Conversation{},
		SelectedTags:  []string{},
		AvailableTags: chat.SystemTags(),
		Favorites:     []model.Favorite{},
		ViewMode:      model.ViewList,
		SortBy:        model.SortByDate,
		SortOrder:     model.SortDesc,
		Filters:       model.DefaultFilters(),
		IsConnected:   false,
	}
}

// clone returns a copy of the state with fresh top-level slices, so a
// subscriber holding a snapshot is insulated from subsequent appends and
// reorderings. Elements are shared; subscribers must treat them as
// read-only.
func (s State) clone() State {
	out := s
	out.Conversations = append([]model.Conversation(nil), s.Conversations...)
	out.SelectedTags = append([]string(nil), s.SelectedTags...)
	out.AvailableTags = append([]model.Tag(nil), s.AvailableTags...)
	out.Favorites = append([]model.Favorite(nil), s.Favorites...)
	return out
}
