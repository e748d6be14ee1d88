// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/trainrag/internal/logging"
	"github.com/jeranaias/trainrag/internal/model"
	"github.com/jeranaias/trainrag/internal/relevance"
)

// =============================================================================
// SEARCH
// =============================================================================

// ErrEmptySearchTerm is returned when a search is requested without a term.
var ErrEmptySearchTerm = errors.New("search term is empty")

const maxSuggestions = 3

// Search runs the query against the given conversations and returns scored
// results ordered by descending relevance. Matching is literal and
// case-insensitive; the query's filters narrow the candidate set before any
// text matching happens.
func (s *Service) Search(conversations []model.Conversation, query model.SearchQuery) (model.SearchResults, error) {
	if strings.TrimSpace(query.Term) == "" {
		return model.SearchResults{}, ErrEmptySearchTerm
	}
	if query.Scope == "" {
		query.Scope = model.ScopeAll
	}

	start := time.Now()
	results := []model.SearchResult{}

	for i := range conversations {
		conv := &conversations[i]
		if !matchesConversationFilters(conv, query) {
			continue
		}

		if query.Scope == model.ScopeAll || query.Scope == model.ScopeSummaries {
			if r, ok := searchSummary(conv, query); ok {
				results = append(results, r)
			}
		}
		if query.Scope == model.ScopeAll || query.Scope == model.ScopeMessages {
			results = append(results, searchMessages(conv, query)...)
		}
		// Tag-name matching is its own scope; "all" covers summaries and
		// messages only.
		if query.Scope == model.ScopeTags {
			if r, ok := searchTags(conv, query); ok {
				results = append(results, r)
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	if s.opts.MaxSearchResults > 0 && len(results) > s.opts.MaxSearchResults {
		results = results[:s.opts.MaxSearchResults]
	}

	out := model.SearchResults{
		Query:         query,
		Results:       results,
		TotalCount:    len(results),
		ExecutionTime: time.Since(start),
		Suggestions:   suggestions(results, query),
	}

	s.log.Info("búsqueda completada", logging.Fields{
		"term":    query.Term,
		"scope":   query.Scope,
		"results": out.TotalCount,
	})

	return out, nil
}

// matchesConversationFilters applies the query's conversation-level filters.
func matchesConversationFilters(conv *model.Conversation, query model.SearchQuery) bool {
	if len(query.ConversationIDs) > 0 && !containsString(query.ConversationIDs, conv.ID) {
		return false
	}
	if query.DateRange != nil && !query.DateRange.Contains(conv.LastActivity) {
		return false
	}
	// Tags narrow by overlap: any shared tag keeps the conversation in.
	if len(query.Tags) > 0 && !hasAnyTag(conv, query.Tags) {
		return false
	}
	return true
}

func hasAnyTag(conv *model.Conversation, tags []string) bool {
	for _, tag := range tags {
		if conv.HasTag(tag) {
			return true
		}
	}
	return false
}

// searchSummary matches the query term against the conversation's summary
// content, when one exists.
func searchSummary(conv *model.Conversation, query model.SearchQuery) (model.SearchResult, bool) {
	if conv.Summary == nil {
		return model.SearchResult{}, false
	}
	score := relevance.Score(conv.Summary.Content, query.Term)
	if score == 0 {
		return model.SearchResult{}, false
	}
	return model.SearchResult{
		ID:             model.NewID(),
		Type:           model.ResultSummary,
		ConversationID: conv.ID,
		Title:          conv.Name,
		Snippet:        relevance.Snippet(conv.Summary.Content, query.Term),
		Relevance:      score,
		Timestamp:      conv.Summary.CreatedAt,
		Tags:           conv.Tags,
		Highlights:     relevance.Highlights(conv.Summary.Content, query.Term),
	}, true
}

// searchMessages matches the query term against each message in the
// conversation, honoring the query's message-level filters.
func searchMessages(conv *model.Conversation, query model.SearchQuery) []model.SearchResult {
	results := []model.SearchResult{}
	for i := range conv.Messages {
		msg := &conv.Messages[i]
		if !matchesMessageFilters(msg, query) {
			continue
		}
		score := relevance.Score(msg.Content, query.Term)
		if score == 0 {
			continue
		}
		results = append(results, model.SearchResult{
			ID:             model.NewID(),
			Type:           model.ResultMessage,
			ConversationID: conv.ID,
			MessageID:      msg.ID,
			Title:          conv.Name + " - " + string(msg.Role),
			Snippet:        relevance.Snippet(msg.Content, query.Term),
			Relevance:      score,
			Timestamp:      msg.Timestamp,
			Tags:           conv.Tags,
			Highlights:     relevance.Highlights(msg.Content, query.Term),
		})
	}
	return results
}

// searchTags matches the query term against the conversation's tag names.
// A tag hit surfaces the conversation itself as the result.
func searchTags(conv *model.Conversation, query model.SearchQuery) (model.SearchResult, bool) {
	for _, tag := range conv.Tags {
		if !strings.Contains(strings.ToLower(tag), strings.ToLower(query.Term)) {
			continue
		}
		return model.SearchResult{
			ID:             model.NewID(),
			Type:           model.ResultConversation,
			ConversationID: conv.ID,
			Title:          conv.Name,
			Snippet:        "Etiqueta: " + tag,
			Relevance:      1,
			Timestamp:      conv.LastActivity,
			Tags:           conv.Tags,
		}, true
	}
	return model.SearchResult{}, false
}

// matchesMessageFilters applies the query's message-level filters.
func matchesMessageFilters(msg *model.Message, query model.SearchQuery) bool {
	if len(query.MessageTypes) > 0 && !containsRole(query.MessageTypes, msg.Role) {
		return false
	}
	if query.HasBookmarks && !msg.IsBookmarked {
		return false
	}
	if query.MinConfidence > 0 && msg.Confidence < query.MinConfidence {
		return false
	}
	return true
}

// suggestions proposes query refinements when a search comes back thin.
func suggestions(results []model.SearchResult, query model.SearchQuery) []string {
	out := []string{}
	if len(results) == 0 {
		out = append(out,
			fmt.Sprintf("%q con diferente ortografía", query.Term),
			fmt.Sprintf("Términos relacionados a %q", query.Term))
	} else if len(results) < 5 {
		out = append(out,
			fmt.Sprintf("%q en todas las conversaciones", query.Term),
			fmt.Sprintf("%q solo en favoritos", query.Term))
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsRole(list []model.Role, r model.Role) bool {
	for _, v := range list {
		if v == r {
			return true
		}
	}
	return false
}
