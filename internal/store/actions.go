// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"time"

	"github.com/jeranaias/trainrag/internal/export"
	"github.com/jeranaias/trainrag/internal/logging"
	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// CONVERSATION ACTIONS
// =============================================================================

// CreateConversation creates a conversation, prepends it to the list and
// makes it active.
func (s *Store) CreateConversation(name string) model.Conversation {
	conv := s.svc.CreateConversation(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Conversations = append([]model.Conversation{conv}, s.state.Conversations...)
	s.state.ActiveConversationID = conv.ID

	s.persist()
	s.publish()
	return conv
}

// SetActiveConversation switches the active conversation pointer. The id is
// not validated; pointing at a missing conversation simply makes message
// appends no-ops until a valid id is set.
func (s *Store) SetActiveConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ActiveConversationID = id
	s.publish()
}

// AddMessage appends a message draft to the active conversation and returns
// the assigned message id. When no active conversation exists, or the
// active id is stale, the call is a logged no-op and ok is false.
func (s *Store) AddMessage(draft model.Message) (id string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(s.state.ActiveConversationID)
	if conv == nil {
		s.log.Warn("mensaje descartado: no hay conversación activa", logging.Fields{
			"activeConversationId": s.state.ActiveConversationID,
			"role":                 draft.Role,
		})
		return "", false
	}

	msg := s.svc.NewMessage(conv.ID, draft)
	conv.Messages = append(conv.Messages, msg)
	s.pruneLocked(conv)
	s.svc.UpdateMetadata(conv)

	s.persist()
	s.publish()
	return msg.ID, true
}

// pruneLocked drops the oldest messages when the conversation exceeds its
// configured cap. Caller holds s.mu.
func (s *Store) pruneLocked(conv *model.Conversation) {
	max := conv.Settings.MaxMessages
	if max <= 0 || len(conv.Messages) <= max {
		return
	}
	dropped := len(conv.Messages) - max
	conv.Messages = append([]model.Message(nil), conv.Messages[dropped:]...)
	s.log.Warn("mensajes antiguos eliminados por límite", logging.Fields{
		"conversationId": conv.ID,
		"dropped":        dropped,
		"maxMessages":    max,
	})
}

// UpdateConversationName renames a conversation.
func (s *Store) UpdateConversationName(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return ErrConversationNotFound
	}
	conv.Name = name
	conv.LastActivity = time.Now()

	s.persist()
	s.publish()
	return nil
}

// UpdateConversationTags replaces a conversation's tags. Duplicates are
// dropped, first occurrence wins.
func (s *Store) UpdateConversationTags(id string, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return ErrConversationNotFound
	}

	seen := make(map[string]struct{}, len(tags))
	deduped := []string{}
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		deduped = append(deduped, t)
	}
	conv.Tags = deduped
	conv.LastActivity = time.Now()

	s.persist()
	s.publish()
	return nil
}

// ToggleFavorite flips a conversation's favorite flag and keeps the
// favorites list in sync. The list never holds two entries for the same
// target.
func (s *Store) ToggleFavorite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return ErrConversationNotFound
	}

	// Drop any existing entry first so a toggle-on after a stale entry
	// cannot produce duplicates.
	kept := s.state.Favorites[:0]
	for _, f := range s.state.Favorites {
		if f.Type == model.FavoriteConversation && f.TargetID == id {
			continue
		}
		kept = append(kept, f)
	}
	s.state.Favorites = kept

	conv.IsFavorite = !conv.IsFavorite
	conv.LastActivity = time.Now()
	if conv.IsFavorite {
		s.state.Favorites = append(s.state.Favorites, model.Favorite{
			ID:        model.NewID(),
			Type:      model.FavoriteConversation,
			TargetID:  id,
			CreatedAt: time.Now(),
		})
	}

	s.persist()
	s.publish()
	return nil
}

// =============================================================================
// LIFECYCLE ACTIONS
// =============================================================================

// ArchiveConversation moves a conversation to the archived status.
func (s *Store) ArchiveConversation(id string) error {
	return s.setStatus(id, model.StatusArchived)
}

// DeleteConversation soft-deletes a conversation. The messages stay in the
// snapshot until the conversation is removed outright; deleting the active
// conversation clears the active pointer.
func (s *Store) DeleteConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return ErrConversationNotFound
	}
	conv.Status = model.StatusDeleted
	conv.LastActivity = time.Now()
	if s.state.ActiveConversationID == id {
		s.state.ActiveConversationID = ""
	}

	s.persist()
	s.publish()
	return nil
}

// RestoreConversation returns an archived or deleted conversation to the
// active status.
func (s *Store) RestoreConversation(id string) error {
	return s.setStatus(id, model.StatusActive)
}

func (s *Store) setStatus(id string, status model.ConversationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return ErrConversationNotFound
	}
	conv.Status = status
	conv.LastActivity = time.Now()

	s.persist()
	s.publish()
	return nil
}

// RemoveConversation removes a conversation outright. When the last
// conversation is removed, a fresh default conversation is seeded and made
// active so the session never faces an empty list.
func (s *Store) RemoveConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.state.Conversations {
		if s.state.Conversations[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrConversationNotFound
	}

	s.state.Conversations = append(s.state.Conversations[:idx], s.state.Conversations[idx+1:]...)
	if s.state.ActiveConversationID == id {
		s.state.ActiveConversationID = ""
	}

	if len(s.state.Conversations) == 0 {
		conv := s.svc.CreateConversation("")
		s.state.Conversations = []model.Conversation{conv}
		s.state.ActiveConversationID = conv.ID
	}

	s.persist()
	s.publish()
	return nil
}

// findLocked returns a pointer into the conversation slice, or nil.
// Caller holds s.mu.
func (s *Store) findLocked(id string) *model.Conversation {
	if id == "" {
		return nil
	}
	for i := range s.state.Conversations {
		if s.state.Conversations[i].ID == id {
			return &s.state.Conversations[i]
		}
	}
	return nil
}

// =============================================================================
// SEARCH ACTIONS
// =============================================================================

// SearchConversations runs a search over the current conversations and
// stores the outcome in the state.
func (s *Store) SearchConversations(query model.SearchQuery) (model.SearchResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsSearching = true
	s.state.SearchQuery = &query
	s.publish()

	results, err := s.svc.Search(s.state.Conversations, query)
	s.state.IsSearching = false
	if err != nil {
		s.state.SearchResults = nil
		s.publish()
		return model.SearchResults{}, err
	}

	s.state.SearchResults = &results
	s.publish()
	return results, nil
}

// ClearSearch drops the current query and results.
func (s *Store) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SearchQuery = nil
	s.state.SearchResults = nil
	s.state.IsSearching = false
	s.publish()
}

// =============================================================================
// SUMMARY ACTION
// =============================================================================

// GenerateSummary produces and attaches a summary for the conversation.
func (s *Store) GenerateSummary(id string) (*model.ConversationSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	sum := s.svc.GenerateSummary(conv)
	conv.Summary = sum

	s.persist()
	s.publish()
	return sum, nil
}

// =============================================================================
// PREFERENCE ACTIONS
// =============================================================================

// UpdateFilters shallow-merges a patch into the current filters.
func (s *Store) UpdateFilters(patch model.FiltersPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := &s.state.Filters
	if patch.Status != nil {
		f.Status = patch.Status
	}
	if patch.Tags != nil {
		f.Tags = patch.Tags
	}
	if patch.ClearDateRange {
		f.DateRange = nil
	} else if patch.DateRange != nil {
		f.DateRange = patch.DateRange
	}
	if patch.HasBookmarks != nil {
		f.HasBookmarks = *patch.HasBookmarks
	}
	if patch.MinMessages != nil {
		f.MinMessages = *patch.MinMessages
	}
	if patch.MaxMessages != nil {
		f.MaxMessages = *patch.MaxMessages
	}

	s.publish()
}

// SetViewMode switches the list presentation preference.
func (s *Store) SetViewMode(mode model.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ViewMode = mode
	s.publish()
}

// SetSorting switches the sort comparator and direction.
func (s *Store) SetSorting(field model.SortField, order model.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SortBy = field
	s.state.SortOrder = order
	s.publish()
}

// SetSelectedTags replaces the tag selection used by the filtered list.
func (s *Store) SetSelectedTags(tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SelectedTags = append([]string(nil), tags...)
	s.publish()
}

// SetConnected records backend connectivity for the presentation layer.
func (s *Store) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsConnected = connected
	s.publish()
}

// =============================================================================
// EXPORT ACTION
// =============================================================================

// Export renders the selected conversations and tracks progress in the
// export status. Errors are recorded in the status and returned.
func (s *Store) Export(opts model.ExportOptions) (model.ExportResult, error) {
	s.mu.Lock()
	selected := selectForExport(s.state.Conversations, opts)
	s.state.ExportStatus = model.ExportStatus{IsExporting: true, Progress: 0}
	s.publish()
	s.mu.Unlock()

	// An empty selection still renders; the document is just headers.
	result, err := export.Export(selected, opts)
	if err != nil {
		s.log.Error("error en exportación", logging.Fields{
			"format": opts.Format,
			"error":  err.Error(),
		})
		s.finishExport(model.ExportStatus{Error: err.Error()})
		return model.ExportResult{}, err
	}

	s.log.Info("exportación completada", logging.Fields{
		"format":   result.Format,
		"filename": result.Filename,
		"size":     result.Size,
	})
	s.finishExport(model.ExportStatus{Progress: 100, CurrentFile: result.Filename})
	return result, nil
}

func (s *Store) finishExport(status model.ExportStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ExportStatus = status
	s.publish()
}

// selectForExport resolves the export selection: the named conversations,
// or all of them, narrowed by the date range when present.
func selectForExport(conversations []model.Conversation, opts model.ExportOptions) []model.Conversation {
	wanted := make(map[string]struct{}, len(opts.Conversations))
	for _, id := range opts.Conversations {
		wanted[id] = struct{}{}
	}

	out := []model.Conversation{}
	for i := range conversations {
		conv := &conversations[i]
		if len(wanted) > 0 {
			if _, ok := wanted[conv.ID]; !ok {
				continue
			}
		}
		if opts.DateRange != nil && !opts.DateRange.Contains(conv.LastActivity) {
			continue
		}
		out = append(out, conv.Clone())
	}
	return out
}
