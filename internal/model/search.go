// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// SEARCH QUERY
// =============================================================================

// SearchScope selects which units of a conversation a search inspects.
type SearchScope string

const (
	ScopeAll       SearchScope = "all"
	ScopeMessages  SearchScope = "messages"
	ScopeSummaries SearchScope = "summaries"
	ScopeTags      SearchScope = "tags"
)

// DateRange is an inclusive [Start, End] time window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range (inclusive).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// SearchQuery describes one search over the conversation list.
// A query maps deterministically to an ordered list of results.
type SearchQuery struct {
	Term            string      `json:"term"`
	Scope           SearchScope `json:"scope"`
	DateRange       *DateRange  `json:"dateRange,omitempty"`
	Tags            []string    `json:"tags,omitempty"`
	ConversationIDs []string    `json:"conversationIds,omitempty"`
	MessageTypes    []Role      `json:"messageTypes,omitempty"`
	HasBookmarks    bool        `json:"hasBookmarks,omitempty"`
	MinConfidence   float64     `json:"minConfidence,omitempty"`
}

// =============================================================================
// SEARCH RESULTS
// =============================================================================

// ResultType identifies the unit a search hit was found in.
type ResultType string

const (
	ResultMessage      ResultType = "message"
	ResultConversation ResultType = "conversation"
	ResultSummary      ResultType = "summary"
)

// SearchResult is a single search hit.
type SearchResult struct {
	ID             string     `json:"id"`
	Type           ResultType `json:"type"`
	ConversationID string     `json:"conversationId"`
	MessageID      string     `json:"messageId,omitempty"`
	Title          string     `json:"title"`
	Snippet        string     `json:"snippet"`
	Relevance      float64    `json:"relevance"`
	Timestamp      time.Time  `json:"timestamp"`
	Tags           []string   `json:"tags"`
	Highlights     []string   `json:"highlights"`
}

// SearchResults is the full outcome of one search execution.
// Results are ordered by relevance descending; ties keep discovery order
// (conversation order, then message order).
type SearchResults struct {
	Query         SearchQuery    `json:"query"`
	Results       []SearchResult `json:"results"`
	TotalCount    int            `json:"totalCount"`
	ExecutionTime time.Duration  `json:"executionTime"`
	Suggestions   []string       `json:"suggestions"`
}
