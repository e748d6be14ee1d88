// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/trainrag/internal/chat"
	"github.com/jeranaias/trainrag/internal/export"
	"github.com/jeranaias/trainrag/internal/model"
	"github.com/jeranaias/trainrag/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := storage.NewFileKV(t.TempDir())
	require.NoError(t, err)
	return New(chat.NewService(nil), kv, nil)
}

// =============================================================================
// CONVERSATION ACTIONS
// =============================================================================

func TestCreateConversationPrependsAndActivates(t *testing.T) {
	st := newTestStore(t)

	first := st.CreateConversation("primera")
	second := st.CreateConversation("segunda")

	state := st.Snapshot()
	require.Len(t, state.Conversations, 2)
	assert.Equal(t, second.ID, state.Conversations[0].ID)
	assert.Equal(t, first.ID, state.Conversations[1].ID)
	assert.Equal(t, second.ID, state.ActiveConversationID)
}

func TestAddMessageNoActiveConversation(t *testing.T) {
	st := newTestStore(t)

	id, ok := st.AddMessage(model.Message{Role: model.RoleUser, Content: "hola"})
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Empty(t, st.Snapshot().Conversations)
}

func TestAddMessageStaleActiveID(t *testing.T) {
	st := newTestStore(t)
	st.CreateConversation("")
	st.SetActiveConversation("no-such-id")

	_, ok := st.AddMessage(model.Message{Role: model.RoleUser, Content: "hola"})
	assert.False(t, ok)

	state := st.Snapshot()
	assert.Empty(t, state.Conversations[0].Messages)
}

func TestAddMessageAppendsAndRecomputesMetadata(t *testing.T) {
	st := newTestStore(t)
	conv := st.CreateConversation("")

	id, ok := st.AddMessage(model.Message{Role: model.RoleUser, Content: "¿Qué dice el contrato?", Tokens: 7})
	require.True(t, ok)
	assert.NotEmpty(t, id)

	_, ok = st.AddMessage(model.Message{
		Role:    model.RoleAssistant,
		Content: "El contrato dice...",
		Tokens:  9,
		Sources: []model.MessageSource{{ID: "s1", Filename: "contrato.pdf"}},
	})
	require.True(t, ok)

	state := st.Snapshot()
	got := state.ActiveConversation()
	require.NotNil(t, got)
	assert.Equal(t, conv.ID, got.ID)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, id, got.Messages[0].ID)
	assert.Equal(t, 2, got.Metadata.MessageCount)
	assert.Equal(t, 16, got.Metadata.TotalTokens)
	assert.Equal(t, []string{"contrato.pdf"}, got.Metadata.DocumentsReferenced)
}

func TestAddMessagePrunesToMaxMessages(t *testing.T) {
	kv, err := storage.NewFileKV(t.TempDir())
	require.NoError(t, err)

	settings := model.DefaultSettings()
	settings.MaxMessages = 2
	seed := storage.Snapshot{
		Conversations: []model.Conversation{{
			ID:     "conv-1",
			Name:   "pequeña",
			Status: model.StatusActive,
			Messages: []model.Message{
				{ID: "m1", Role: model.RoleUser, Content: "uno"},
				{ID: "m2", Role: model.RoleAssistant, Content: "dos"},
			},
			Settings: settings,
		}},
	}
	data, err := storage.EncodeSnapshot(seed)
	require.NoError(t, err)
	require.NoError(t, kv.Set(storage.SnapshotKey, data))

	st := New(chat.NewService(nil), kv, nil)
	st.Load()
	st.SetActiveConversation("conv-1")

	_, ok := st.AddMessage(model.Message{Role: model.RoleUser, Content: "tres"})
	require.True(t, ok)

	got := st.Snapshot().ActiveConversation()
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "dos", got.Messages[0].Content)
	assert.Equal(t, "tres", got.Messages[1].Content)
}

func TestUpdateConversationNameAndTags(t *testing.T) {
	st := newTestStore(t)
	conv := st.CreateConversation("")

	require.NoError(t, st.UpdateConversationName(conv.ID, "Renombrada"))
	require.NoError(t, st.UpdateConversationTags(conv.ID, []string{"work", "work", "research"}))

	got := st.Snapshot().ActiveConversation()
	assert.Equal(t, "Renombrada", got.Name)
	assert.Equal(t, []string{"work", "research"}, got.Tags)

	assert.ErrorIs(t, st.UpdateConversationName("missing", "x"), ErrConversationNotFound)
}

func TestToggleFavoriteKeepsListUnique(t *testing.T) {
	st := newTestStore(t)
	conv := st.CreateConversation("")

	require.NoError(t, st.ToggleFavorite(conv.ID))
	state := st.Snapshot()
	assert.True(t, state.Conversations[0].IsFavorite)
	require.Len(t, state.Favorites, 1)
	assert.Equal(t, model.FavoriteConversation, state.Favorites[0].Type)
	assert.Equal(t, conv.ID, state.Favorites[0].TargetID)

	require.NoError(t, st.ToggleFavorite(conv.ID))
	state = st.Snapshot()
	assert.False(t, state.Conversations[0].IsFavorite)
	assert.Empty(t, state.Favorites)

	// Toggling on and off repeatedly never accumulates entries.
	require.NoError(t, st.ToggleFavorite(conv.ID))
	require.NoError(t, st.ToggleFavorite(conv.ID))
	require.NoError(t, st.ToggleFavorite(conv.ID))
	state = st.Snapshot()
	require.Len(t, state.Favorites, 1)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestDeleteConversationClearsActive(t *testing.T) {
	st := newTestStore(t)
	conv := st.CreateConversation("")

	require.NoError(t, st.DeleteConversation(conv.ID))

	state := st.Snapshot()
	assert.Empty(t, state.ActiveConversationID)
	assert.Equal(t, model.StatusDeleted, state.Conversations[0].Status)
}

func TestArchiveAndRestore(t *testing.T) {
	st := newTestStore(t)
	conv := st.CreateConversation("")

	require.NoError(t, st.ArchiveConversation(conv.ID))
	assert.Equal(t, model.StatusArchived, st.Snapshot().Conversations[0].Status)

	require.NoError(t, st.RestoreConversation(conv.ID))
	assert.Equal(t, model.StatusActive, st.Snapshot().Conversations[0].Status)
}

func TestMutationsBumpLastActivity(t *testing.T) {
	old := time.Now().Add(-time.Hour)
	seedStore := func(t *testing.T) *Store {
		t.Helper()
		kv, err := storage.NewFileKV(t.TempDir())
		require.NoError(t, err)
		seed := storage.Snapshot{
			Conversations: []model.Conversation{{
				ID: "conv-1", Name: "vieja", Status: model.StatusActive, LastActivity: old,
			}},
		}
		data, err := storage.EncodeSnapshot(seed)
		require.NoError(t, err)
		require.NoError(t, kv.Set(storage.SnapshotKey, data))
		st := New(chat.NewService(nil), kv, nil)
		st.Load()
		return st
	}

	tests := []struct {
		name   string
		mutate func(st *Store) error
	}{
		{"tags", func(st *Store) error { return st.UpdateConversationTags("conv-1", []string{"work"}) }},
		{"favorite", func(st *Store) error { return st.ToggleFavorite("conv-1") }},
		{"archive", func(st *Store) error { return st.ArchiveConversation("conv-1") }},
		{"restore", func(st *Store) error { return st.RestoreConversation("conv-1") }},
		{"delete", func(st *Store) error { return st.DeleteConversation("conv-1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := seedStore(t)
			require.NoError(t, tt.mutate(st))
			got := st.Snapshot().Conversations[0].LastActivity
			assert.True(t, got.After(old), "mutation must bump lastActivity")
		})
	}
}

func TestRemoveLastConversationSeedsDefault(t *testing.T) {
	st := newTestStore(t)
	conv := st.CreateConversation("única")

	require.NoError(t, st.RemoveConversation(conv.ID))

	state := st.Snapshot()
	require.Len(t, state.Conversations, 1)
	assert.NotEqual(t, conv.ID, state.Conversations[0].ID)
	assert.Equal(t, state.Conversations[0].ID, state.ActiveConversationID)
}

func TestRemoveConversationKeepsOthers(t *testing.T) {
	st := newTestStore(t)
	a := st.CreateConversation("a")
	b := st.CreateConversation("b")

	require.NoError(t, st.RemoveConversation(a.ID))

	state := st.Snapshot()
	require.Len(t, state.Conversations, 1)
	assert.Equal(t, b.ID, state.Conversations[0].ID)
	assert.Equal(t, b.ID, state.ActiveConversationID)
}

// =============================================================================
// SEARCH AND SUMMARY
// =============================================================================

func TestSearchConversationsStoresResults(t *testing.T) {
	st := newTestStore(t)
	st.CreateConversation("")
	st.AddMessage(model.Message{Role: model.RoleUser, Content: "pregunta sobre el contrato"})

	results, err := st.SearchConversations(model.SearchQuery{Term: "contrato", Scope: model.ScopeAll})
	require.NoError(t, err)
	assert.Equal(t, 1, results.TotalCount)

	state := st.Snapshot()
	require.NotNil(t, state.SearchResults)
	assert.False(t, state.IsSearching)

	st.ClearSearch()
	state = st.Snapshot()
	assert.Nil(t, state.SearchQuery)
	assert.Nil(t, state.SearchResults)
}

func TestSearchEmptyTermPropagates(t *testing.T) {
	st := newTestStore(t)
	_, err := st.SearchConversations(model.SearchQuery{Term: ""})
	assert.ErrorIs(t, err, chat.ErrEmptySearchTerm)
}

func TestGenerateSummaryAttaches(t *testing.T) {
	st := newTestStore(t)
	conv := st.CreateConversation("")
	st.AddMessage(model.Message{Role: model.RoleUser, Content: "¿Qué cubre la garantía del producto?"})

	sum, err := st.GenerateSummary(conv.ID)
	require.NoError(t, err)
	require.NotNil(t, sum)

	got := st.Snapshot().ActiveConversation()
	require.NotNil(t, got.Summary)
	assert.Equal(t, sum.ID, got.Summary.ID)

	_, err = st.GenerateSummary("missing")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

// =============================================================================
// PREFERENCES AND DERIVATIONS
// =============================================================================

func TestUpdateFiltersPatch(t *testing.T) {
	st := newTestStore(t)

	bookmarks := true
	st.UpdateFilters(model.FiltersPatch{
		Status:       []model.ConversationStatus{model.StatusArchived},
		HasBookmarks: &bookmarks,
	})

	f := st.Snapshot().Filters
	assert.Equal(t, []model.ConversationStatus{model.StatusArchived}, f.Status)
	assert.True(t, f.HasBookmarks)
	// Untouched fields keep their values.
	assert.Empty(t, f.Tags)

	st.UpdateFilters(model.FiltersPatch{DateRange: &model.DateRange{Start: time.Now(), End: time.Now()}})
	require.NotNil(t, st.Snapshot().Filters.DateRange)

	st.UpdateFilters(model.FiltersPatch{ClearDateRange: true})
	assert.Nil(t, st.Snapshot().Filters.DateRange)
}

func TestFilteredConversationsStatusAndSort(t *testing.T) {
	st := newTestStore(t)
	st.CreateConversation("Zanahorias")
	st.CreateConversation("Análisis")
	b := st.CreateConversation("Barco")
	require.NoError(t, st.ArchiveConversation(b.ID))

	st.SetSorting(model.SortByName, model.SortAsc)
	state := st.Snapshot()

	got := state.FilteredConversations()
	require.Len(t, got, 2) // archived one excluded by default filters
	// Spanish collation sorts Análisis before Zanahorias.
	assert.Equal(t, "Análisis", got[0].Name)
	assert.Equal(t, "Zanahorias", got[1].Name)

	st.SetSorting(model.SortByName, model.SortDesc)
	got = st.Snapshot().FilteredConversations()
	assert.Equal(t, "Zanahorias", got[0].Name)

	// Widening the status filter brings the archived conversation back.
	st.UpdateFilters(model.FiltersPatch{Status: []model.ConversationStatus{
		model.StatusActive, model.StatusArchived,
	}})
	assert.Len(t, st.Snapshot().FilteredConversations(), 3)
}

func TestFavoriteFilterIgnoresBookmarkedMessages(t *testing.T) {
	st := newTestStore(t)
	plain := st.CreateConversation("con marcador")
	// A bookmarked message does not qualify; the flag filters favorites.
	st.AddMessage(model.Message{Role: model.RoleUser, Content: "nota", IsBookmarked: true})
	fav := st.CreateConversation("favorita")
	require.NoError(t, st.ToggleFavorite(fav.ID))

	on := true
	st.UpdateFilters(model.FiltersPatch{HasBookmarks: &on})

	got := st.Snapshot().FilteredConversations()
	require.Len(t, got, 1)
	assert.Equal(t, fav.ID, got[0].ID)
	assert.NotEqual(t, plain.ID, got[0].ID)
}

func TestRecentConversationsCapped(t *testing.T) {
	st := newTestStore(t)
	for i := 0; i < 7; i++ {
		st.CreateConversation("")
	}
	last := st.CreateConversation("la más reciente")

	recent := st.Snapshot().RecentConversations()
	require.Len(t, recent, 5)
	assert.Equal(t, last.ID, recent[0].ID)
}

func TestViewModeAndConnection(t *testing.T) {
	st := newTestStore(t)

	st.SetViewMode(model.ViewGrid)
	st.SetConnected(true)

	state := st.Snapshot()
	assert.Equal(t, model.ViewGrid, state.ViewMode)
	assert.True(t, state.IsConnected)
}

// =============================================================================
// PERSISTENCE
// =============================================================================

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	kv, err := storage.NewFileKV(dir)
	require.NoError(t, err)

	st := New(chat.NewService(nil), kv, nil)
	conv := st.CreateConversation("persistida")
	st.AddMessage(model.Message{Role: model.RoleUser, Content: "hola"})
	require.NoError(t, st.ToggleFavorite(conv.ID))
	st.Flush()

	kv2, err := storage.NewFileKV(dir)
	require.NoError(t, err)
	st2 := New(chat.NewService(nil), kv2, nil)
	st2.Load()

	state := st2.Snapshot()
	require.Len(t, state.Conversations, 1)
	assert.Equal(t, conv.ID, state.Conversations[0].ID)
	assert.Equal(t, "persistida", state.Conversations[0].Name)
	require.Len(t, state.Conversations[0].Messages, 1)
	assert.True(t, state.Conversations[0].IsFavorite)
	require.Len(t, state.Favorites, 1)
	// Session-local state is not persisted.
	assert.Empty(t, state.ActiveConversationID)
}

func TestLoadToleratesCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	kv, err := storage.NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(storage.SnapshotKey, []byte("not json")))

	st := New(chat.NewService(nil), kv, nil)
	st.Load()

	// State stays usable after a failed load.
	assert.Empty(t, st.Snapshot().Conversations)
	st.CreateConversation("")
	assert.Len(t, st.Snapshot().Conversations, 1)
}

func TestSubscriberNotified(t *testing.T) {
	st := newTestStore(t)

	var notified int
	cancel := st.Subscribe(func(State) { notified++ })

	st.CreateConversation("")
	assert.Greater(t, notified, 0)

	seen := notified
	cancel()
	st.CreateConversation("")
	assert.Equal(t, seen, notified)
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExportTracksStatus(t *testing.T) {
	st := newTestStore(t)
	st.CreateConversation("exportable")
	st.AddMessage(model.Message{Role: model.RoleUser, Content: "hola"})

	result, err := st.Export(model.ExportOptions{Format: model.FormatMarkdown})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Content)

	status := st.Snapshot().ExportStatus
	assert.False(t, status.IsExporting)
	assert.Equal(t, 100, status.Progress)
	assert.Equal(t, result.Filename, status.CurrentFile)
}

func TestExportErrorRecorded(t *testing.T) {
	st := newTestStore(t)
	st.CreateConversation("exportable")

	_, err := st.Export(model.ExportOptions{Format: model.FormatPDF})
	assert.ErrorIs(t, err, export.ErrPDFNotImplemented)

	status := st.Snapshot().ExportStatus
	assert.False(t, status.IsExporting)
	assert.NotEmpty(t, status.Error)
}

func TestExportEmptySelectionRendersHeaders(t *testing.T) {
	st := newTestStore(t)
	st.CreateConversation("")

	result, err := st.Export(model.ExportOptions{
		Format:        model.FormatMarkdown,
		Conversations: []string{"missing"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(result.Content), "Exportación de Conversaciones")

	status := st.Snapshot().ExportStatus
	assert.Empty(t, status.Error)
	assert.Equal(t, 100, status.Progress)
}

// =============================================================================
// RETENTION
// =============================================================================

func TestApplyRetention(t *testing.T) {
	kv, err := storage.NewFileKV(t.TempDir())
	require.NoError(t, err)

	old := time.Now().AddDate(0, 0, -200)
	seed := storage.Snapshot{
		Conversations: []model.Conversation{
			{ID: "fresh", Status: model.StatusActive, LastActivity: time.Now()},
			{ID: "stale-active", Status: model.StatusActive, LastActivity: old},
			{ID: "stale-archived", Status: model.StatusArchived, LastActivity: old},
		},
	}
	data, err := storage.EncodeSnapshot(seed)
	require.NoError(t, err)
	require.NoError(t, kv.Set(storage.SnapshotKey, data))

	st := New(chat.NewService(nil), kv, nil)
	st.Load()

	archived, deleted := st.ApplyRetention(RetentionPolicy{
		AutoArchive:      true,
		ArchiveAfterDays: 90,
		AutoDelete:       true,
		DeleteAfterDays:  180,
	})

	assert.Equal(t, 1, archived)
	assert.Equal(t, 1, deleted)

	state := st.Snapshot()
	byID := map[string]model.ConversationStatus{}
	for _, c := range state.Conversations {
		byID[c.ID] = c.Status
	}
	assert.Equal(t, model.StatusActive, byID["fresh"])
	assert.Equal(t, model.StatusArchived, byID["stale-active"])
	assert.NotContains(t, byID, "stale-archived")
}
