// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the stateless conversation domain service.
//
// The service owns the business rules for conversations: creation defaults,
// message identity assignment, metadata recomputation, summary generation,
// search execution and export. It retains no state between calls; every
// operation takes explicit inputs and returns new values, leaving identity
// management and persistence to the store.
//
// # Usage
//
//	svc := chat.NewService(sink)
//	conv := svc.CreateConversation("")
//	msg := svc.NewMessage(conv.ID, draft)
//	conv.Messages = append(conv.Messages, msg)
//	svc.UpdateMetadata(conv)
package chat
