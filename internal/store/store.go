// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/trainrag/internal/chat"
	"github.com/jeranaias/trainrag/internal/logging"
	"github.com/jeranaias/trainrag/internal/storage"
)

// =============================================================================
// STORE
// =============================================================================

// ErrConversationNotFound is returned by actions that target a conversation
// by id when no such conversation exists.
var ErrConversationNotFound = errors.New("conversation not found")

// saveInterval bounds how often mutations reach the KV. Mutations landing
// inside the window are coalesced into one deferred save.
const saveInterval = time.Second

// Store owns the conversation state. All methods are safe for concurrent
// use.
type Store struct {
	mu    sync.RWMutex
	state State

	svc *chat.Service
	kv  storage.KV
	log logging.Sink

	subs   map[int]func(State)
	nextID int

	saveLimiter *rate.Limiter
	saveTimer   *time.Timer
	dirty       bool
}

// New creates a store around the given domain service and KV backend.
// The state starts empty; call Load to pull the persisted snapshot.
func New(svc *chat.Service, kv storage.KV, log logging.Sink) *Store {
	if log == nil {
		log = logging.NopSink{}
	}
	return &Store{
		state:       NewState(),
		svc:         svc,
		kv:          kv,
		log:         log,
		subs:        make(map[int]func(State)),
		saveLimiter: rate.NewLimiter(rate.Every(saveInterval), 1),
	}
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers fn to run with a state snapshot after every mutation.
// The returned function cancels the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// publish notifies subscribers. Caller holds s.mu.
func (s *Store) publish() {
	snap := s.state.clone()
	for _, fn := range s.subs {
		fn(snap)
	}
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// Load replaces the persisted portion of the state with the stored
// snapshot. A missing snapshot is a clean first run. Decode failures are
// logged and the in-memory state is left untouched; losing the on-disk
// document must not take the session down with it.
func (s *Store) Load() {
	data, err := s.kv.Get(storage.SnapshotKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		s.log.Info("sin estado guardado, iniciando vacío", nil)
		return
	}
	if err != nil {
		s.log.Error("error cargando conversaciones", logging.Fields{"error": err.Error()})
		return
	}

	snap, err := storage.DecodeSnapshot(data)
	if err != nil {
		s.log.Error("error cargando conversaciones", logging.Fields{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Conversations = snap.Conversations
	s.state.Favorites = snap.Favorites
	if len(snap.AvailableTags) > 0 {
		s.state.AvailableTags = snap.AvailableTags
	}

	s.log.Info("conversaciones cargadas", logging.Fields{
		"count":     len(snap.Conversations),
		"lastSaved": snap.LastSaved,
	})

	s.publish()
}

// persist schedules a save of the persisted state portion. Called with
// s.mu held. The first mutation in a window saves immediately; the rest
// coalesce into one deferred save at the end of the window.
func (s *Store) persist() {
	s.dirty = true
	if s.saveLimiter.Allow() {
		s.saveLocked()
		return
	}
	if s.saveTimer == nil {
		s.saveTimer = time.AfterFunc(saveInterval, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.saveTimer = nil
			if s.dirty {
				s.saveLocked()
			}
		})
	}
}

// Flush forces any pending save out immediately. Call before shutdown.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	if s.dirty {
		s.saveLocked()
	}
}

// Close flushes pending writes and closes the KV backend.
func (s *Store) Close() error {
	s.Flush()
	return s.kv.Close()
}

// saveLocked writes the snapshot. Caller holds s.mu.
func (s *Store) saveLocked() {
	snap := storage.Snapshot{
		Conversations: s.state.Conversations,
		AvailableTags: s.state.AvailableTags,
		Favorites:     s.state.Favorites,
	}

	data, err := storage.EncodeSnapshot(snap)
	if err != nil {
		s.log.Error("error guardando conversaciones", logging.Fields{"error": err.Error()})
		return
	}
	if err := s.kv.Set(storage.SnapshotKey, data); err != nil {
		s.log.Error("error guardando conversaciones", logging.Fields{"error": err.Error()})
		return
	}

	s.dirty = false
	s.log.Debug("conversaciones guardadas", logging.Fields{
		"count": len(s.state.Conversations),
		"bytes": len(data),
	})
}
