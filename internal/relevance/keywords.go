// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package relevance

import (
	"sort"
	"strings"
	"unicode"
)

// MaxKeywords is the default number of keywords returned by Keywords.
const MaxKeywords = 10

// spanishStopwords is the fixed stopword set used for keyword extraction.
// The app's corpus is Spanish-language document Q&A.
var spanishStopwords = map[string]struct{}{}

func init() {
	words := []string{
		"el", "la", "de", "que", "y", "es", "en", "un", "se", "no", "te", "lo",
		"le", "da", "su", "por", "son", "con", "para", "al", "del", "los", "las",
		"una", "como", "pero", "sus", "fue", "ser", "tiene", "entre", "sin",
		"sobre", "esta", "más", "hasta", "desde", "cuando", "muy", "todo",
		"también", "otro", "años", "hay", "día", "puede", "hacer", "cada",
		"tiempo", "parte", "mundo", "vida", "estados", "gobierno", "país",
		"me", "mi", "tu", "ti", "él", "ella", "nosotros", "vosotros", "ellos",
		"ellas", "este", "estos", "estas", "ese", "esa", "esos", "esas",
		"aquel", "aquella", "aquellos", "aquellas", "soy", "eres", "somos",
		"sois", "era", "eras", "éramos", "erais", "eran", "he", "has",
		"ha", "hemos", "habéis", "han", "había", "habías", "habíamos",
		"habíais", "habían", "hube", "hubiste", "hubo", "hubimos", "hubisteis",
		"hubieron", "seré", "serás", "será", "seremos", "seréis", "serán",
	}
	for _, w := range words {
		spanishStopwords[w] = struct{}{}
	}
}

// IsStopword reports whether the (lowercase) word is in the stopword set.
func IsStopword(word string) bool {
	_, ok := spanishStopwords[word]
	return ok
}

// =============================================================================
// KEYWORD EXTRACTION
// =============================================================================

// Keywords extracts the maxKeywords highest-frequency tokens from text.
//
// The text is lowercased and stripped of punctuation, then split on
// whitespace. Tokens of length three or less and Spanish stopwords are
// discarded. Ties are broken by first-seen order.
func Keywords(text string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		maxKeywords = MaxKeywords
	}

	counts := make(map[string]int)
	var order []string

	for _, word := range strings.Fields(CleanText(strings.ToLower(text))) {
		if len([]rune(word)) <= 3 || IsStopword(word) {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}

	// Stable sort over first-seen order keeps ties deterministic.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// CleanText replaces every character that is not a letter, digit, underscore
// or whitespace with a space. Accented letters and ñ/ü survive, so Spanish
// words stay intact.
func CleanText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}
