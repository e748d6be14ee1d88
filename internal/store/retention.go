// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"time"

	"github.com/jeranaias/trainrag/internal/logging"
	"github.com/jeranaias/trainrag/internal/model"
)

// =============================================================================
// RETENTION
// =============================================================================

// RetentionPolicy describes automatic lifecycle transitions for stale
// conversations. Days count from the conversation's last activity.
type RetentionPolicy struct {
	AutoArchive      bool
	ArchiveAfterDays int
	AutoDelete       bool
	DeleteAfterDays  int
}

// ApplyRetention applies the policy once: stale active conversations are
// archived, and conversations past the delete horizon are removed from the
// snapshot outright. Returns how many conversations each step touched.
//
// Deletion never seeds a default conversation; retention runs at startup
// before the session needs an active conversation.
func (s *Store) ApplyRetention(p RetentionPolicy) (archived, deleted int) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.AutoDelete && p.DeleteAfterDays > 0 {
		horizon := now.AddDate(0, 0, -p.DeleteAfterDays)
		kept := s.state.Conversations[:0]
		for _, conv := range s.state.Conversations {
			stale := conv.LastActivity.Before(horizon) && conv.Status != model.StatusActive
			if stale {
				deleted++
				if s.state.ActiveConversationID == conv.ID {
					s.state.ActiveConversationID = ""
				}
				continue
			}
			kept = append(kept, conv)
		}
		s.state.Conversations = kept
	}

	if p.AutoArchive && p.ArchiveAfterDays > 0 {
		horizon := now.AddDate(0, 0, -p.ArchiveAfterDays)
		for i := range s.state.Conversations {
			conv := &s.state.Conversations[i]
			if conv.Status == model.StatusActive && conv.LastActivity.Before(horizon) {
				conv.Status = model.StatusArchived
				archived++
			}
		}
	}

	if archived > 0 || deleted > 0 {
		s.log.Info("retención aplicada", logging.Fields{
			"archived": archived,
			"deleted":  deleted,
		})
		s.persist()
		s.publish()
	}
	return archived, deleted
}
