// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// DERIVATIONS
// =============================================================================

// Derivations are pure views over a state snapshot. They never mutate the
// snapshot; sorted outputs are fresh slices.

const maxRecentConversations = 5

// ActiveConversation returns the active conversation, or nil when the
// pointer is unset or stale.
func (s State) ActiveConversation() *model.Conversation {
	if s.ActiveConversationID == "" {
		return nil
	}
	for i := range s.Conversations {
		if s.Conversations[i].ID == s.ActiveConversationID {
			return &s.Conversations[i]
		}
	}
	return nil
}

// FilteredConversations applies the current filters, tag selection and sort
// preferences to the conversation list.
func (s State) FilteredConversations() []model.Conversation {
	out := []model.Conversation{}
	for i := range s.Conversations {
		if matchesFilters(&s.Conversations[i], s.Filters, s.SelectedTags) {
			out = append(out, s.Conversations[i])
		}
	}

	cmp := comparator(s.SortBy)
	if cmp != nil {
		if s.SortOrder == model.SortDesc {
			asc := cmp
			cmp = func(a, b *model.Conversation) bool { return asc(b, a) }
		}
		sort.SliceStable(out, func(i, j int) bool { return cmp(&out[i], &out[j]) })
	}

	return out
}

// FavoriteConversations returns the favorited conversations in list order.
func (s State) FavoriteConversations() []model.Conversation {
	out := []model.Conversation{}
	for i := range s.Conversations {
		if s.Conversations[i].IsFavorite {
			out = append(out, s.Conversations[i])
		}
	}
	return out
}

// RecentConversations returns up to five active conversations ordered by
// most recent activity.
func (s State) RecentConversations() []model.Conversation {
	out := []model.Conversation{}
	for i := range s.Conversations {
		if s.Conversations[i].Status == model.StatusActive {
			out = append(out, s.Conversations[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	if len(out) > maxRecentConversations {
		out = out[:maxRecentConversations]
	}
	return out
}

// =============================================================================
// FILTER MATCHING
// =============================================================================

func matchesFilters(conv *model.Conversation, f model.ConversationFilters, selectedTags []string) bool {
	if len(f.Status) > 0 && !containsStatus(f.Status, conv.Status) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(conv, f.Tags) {
		return false
	}
	if len(selectedTags) > 0 && !hasAnyTag(conv, selectedTags) {
		return false
	}
	// Despite the name, this filter narrows to favorited conversations,
	// not to conversations holding bookmarked messages.
	if f.HasBookmarks && !conv.IsFavorite {
		return false
	}
	if f.DateRange != nil && !f.DateRange.Contains(conv.LastActivity) {
		return false
	}
	if f.MinMessages > 0 && conv.MessageCount() < f.MinMessages {
		return false
	}
	if f.MaxMessages > 0 && conv.MessageCount() > f.MaxMessages {
		return false
	}
	return true
}

func containsStatus(list []model.ConversationStatus, status model.ConversationStatus) bool {
	for _, st := range list {
		if st == status {
			return true
		}
	}
	return false
}

func hasAnyTag(conv *model.Conversation, tags []string) bool {
	for _, t := range tags {
		if conv.HasTag(t) {
			return true
		}
	}
	return false
}

// =============================================================================
// SORT COMPARATORS
// =============================================================================

// comparator returns the ascending comparator for a sort field. Relevance
// has no meaning outside an active search, so it keeps the original order.
func comparator(field model.SortField) func(a, b *model.Conversation) bool {
	switch field {
	case model.SortByName:
		// Collation matters here: plain byte comparison misorders
		// accented names like "Análisis".
		c := collate.New(language.Spanish)
		return func(a, b *model.Conversation) bool {
			return c.CompareString(a.Name, b.Name) < 0
		}
	case model.SortByActivity:
		return func(a, b *model.Conversation) bool {
			return a.MessageCount() < b.MessageCount()
		}
	case model.SortByDate:
		return func(a, b *model.Conversation) bool {
			return a.LastActivity.Before(b.LastActivity)
		}
	case model.SortByRelevance:
		return nil
	default:
		return nil
	}
}
