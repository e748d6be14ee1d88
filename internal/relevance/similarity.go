// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package relevance

// =============================================================================
// STRING SIMILARITY
// =============================================================================

// Similarity returns the normalized Levenshtein similarity of two strings:
// 1 - editDistance/max(len(a), len(b)), computed over runes.
// Two empty strings are defined as identical (similarity 1).
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}

	distance := editDistance(ra, rb)
	return 1 - float64(distance)/float64(maxLen)
}

// editDistance computes the Levenshtein distance between two rune slices
// using the two-row dynamic programming formulation.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := 0; i <= len(a); i++ {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min3(
				curr[i-1]+1,    // deletion
				prev[i]+1,      // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
