// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package relevance

import (
	"math"
	"strings"
	"unicode"
)

// SnippetLength is the default maximum snippet length in characters when the
// term is not found in the content.
const SnippetLength = 150

// MaxHighlights caps the number of highlight windows per content unit.
const MaxHighlights = 5

// snippetContext is how many characters of context surround a match in a
// snippet; highlightContext is the (tighter) context for highlight windows.
const (
	snippetContext   = 50
	highlightContext = 20
)

// =============================================================================
// SNIPPET EXTRACTION
// =============================================================================

// Snippet returns a short excerpt of content around the first
// case-insensitive occurrence of term.
//
// If term does not occur, the first SnippetLength characters are returned
// with a trailing ellipsis. Otherwise the window spans from 50 characters
// before the match to 50 characters after it; ellipsis markers are added
// only at edges where truncation actually occurred.
func Snippet(content, term string) string {
	runes := []rune(content)
	idx := indexFold(runes, []rune(term))
	if idx < 0 {
		end := len(runes)
		if end > SnippetLength {
			end = SnippetLength
		}
		return string(runes[:end]) + "..."
	}

	start := idx - snippetContext
	if start < 0 {
		start = 0
	}
	end := idx + len([]rune(term)) + snippetContext
	if end > len(runes) {
		end = len(runes)
	}

	var sb strings.Builder
	if start > 0 {
		sb.WriteString("...")
	}
	sb.WriteString(string(runes[start:end]))
	if end < len(runes) {
		sb.WriteString("...")
	}
	return sb.String()
}

// =============================================================================
// RELEVANCE SCORE
// =============================================================================

// Score computes an occurrence-based relevance of term within content,
// normalized to [0, 1].
//
// The score counts non-overlapping case-insensitive literal occurrences and
// divides by sqrt(len/100), so it is monotonic in occurrence count and
// sub-linear in content length. An empty term or empty content scores zero.
func Score(content, term string) float64 {
	if term == "" || content == "" {
		return 0
	}

	matches := countFold(content, term)
	if matches == 0 {
		return 0
	}

	length := float64(len([]rune(content)))
	score := float64(matches) / math.Sqrt(length/100)
	return math.Min(1, score)
}

// =============================================================================
// HIGHLIGHT EXTRACTION
// =============================================================================

// Highlights returns up to MaxHighlights excerpt windows around successive
// non-overlapping case-insensitive matches of term, in order of appearance.
// Each window spans 20 characters of context on either side of the match.
func Highlights(content, term string) []string {
	termRunes := []rune(term)
	if len(termRunes) == 0 {
		return nil
	}

	runes := []rune(content)
	var highlights []string

	pos := 0
	for len(highlights) < MaxHighlights {
		idx := indexFold(runes[pos:], termRunes)
		if idx < 0 {
			break
		}
		idx += pos

		start := idx - highlightContext
		if start < 0 {
			start = 0
		}
		end := idx + len(termRunes) + highlightContext
		if end > len(runes) {
			end = len(runes)
		}
		highlights = append(highlights, string(runes[start:end]))

		pos = idx + len(termRunes)
	}

	return highlights
}

// =============================================================================
// CASE-FOLDED MATCHING HELPERS
// =============================================================================

// foldRunes lowercases a rune slice element-wise. Per-rune lowering keeps
// indices stable between the folded and original text, which byte-level
// strings.ToLower does not guarantee.
func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexFold returns the rune index of the first case-insensitive occurrence
// of term in content, or -1.
func indexFold(content, term []rune) int {
	if len(term) == 0 || len(term) > len(content) {
		return -1
	}
	c := foldRunes(content)
	t := foldRunes(term)
	limit := len(c) - len(t)
	for i := 0; i <= limit; i++ {
		if runesEqual(c[i:i+len(t)], t) {
			return i
		}
	}
	return -1
}

// countFold counts non-overlapping case-insensitive occurrences of term.
func countFold(content, term string) int {
	c := foldRunes([]rune(content))
	t := foldRunes([]rune(term))
	if len(t) == 0 || len(t) > len(c) {
		return 0
	}

	count := 0
	for i := 0; i+len(t) <= len(c); {
		if runesEqual(c[i:i+len(t)], t) {
			count++
			i += len(t)
		} else {
			i++
		}
	}
	return count
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
