// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package relevance provides pure text utilities for search scoring.
//
// All functions are stateless and operate on runes, not bytes, so
// multi-byte UTF-8 input (accented Spanish text in particular) is
// never split mid-character.
//
//   - Snippet: a short excerpt around the first match of a term
//   - Score: occurrence-based relevance, normalized sub-linearly by length
//   - Highlights: up to five excerpt windows around successive matches
//   - Keywords: naive frequency-ranked topic extraction
//   - Similarity: normalized Levenshtein similarity
//
// Matching is literal throughout. Terms containing characters that are
// special in a pattern engine simply count zero matches here; there is no
// escaping layer and no error path for such terms.
package relevance
