// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store holds the in-memory conversation state and its actions.
//
// The Store is the single authority over state: every mutation goes through
// an action method, which updates the state under a mutex, notifies
// subscribers with a consistent snapshot, and schedules persistence.
// Persistence is write-behind with coalescing so bursts of mutations
// produce one save.
//
// Derivations (filtered list, favorites, recents) are pure functions over
// a state snapshot and never mutate it.
package store
