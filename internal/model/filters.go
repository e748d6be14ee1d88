// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// CONVERSATION FILTERS
// =============================================================================

// ConversationFilters selects which conversations appear in the filtered
// list derivation. Filters apply in order: status, tags (any-of), favorite,
// date range, message-count bounds.
type ConversationFilters struct {
	Status       []ConversationStatus `json:"status"`
	Tags         []string             `json:"tags"`
	DateRange    *DateRange           `json:"dateRange,omitempty"`
	HasBookmarks bool                 `json:"hasBookmarks"`
	MinMessages  int                  `json:"minMessages,omitempty"`
	MaxMessages  int                  `json:"maxMessages,omitempty"`
}

// DefaultFilters returns the initial filter set: active conversations only.
func DefaultFilters() ConversationFilters {
	return ConversationFilters{
		Status:       []ConversationStatus{StatusActive},
		Tags:         []string{},
		HasBookmarks: false,
	}
}

// FiltersPatch is a partial filter update. Nil fields leave the existing
// value unchanged; the patch is shallow-merged into the current filters.
type FiltersPatch struct {
	Status         []ConversationStatus
	Tags           []string
	DateRange      *DateRange
	ClearDateRange bool
	HasBookmarks   *bool
	MinMessages    *int
	MaxMessages    *int
}

// =============================================================================
// VIEW AND SORT PREFERENCES
// =============================================================================

// ViewMode is the presentation layout preference for the conversation list.
type ViewMode string

const (
	ViewList     ViewMode = "list"
	ViewGrid     ViewMode = "grid"
	ViewTimeline ViewMode = "timeline"
)

// SortField selects the comparator for the filtered conversation list.
type SortField string

const (
	SortByDate      SortField = "date"     // lastActivity
	SortByName      SortField = "name"     // lexicographic, Spanish collation
	SortByActivity  SortField = "activity" // message count
	SortByRelevance SortField = "relevance" // no-op outside an active search
)

// SortOrder is the sort direction. Descending is the negation of the
// ascending comparator; ties keep their original order either way.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
