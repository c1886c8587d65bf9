package suggest

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// score rates how well a candidate text matches a query. Three tiers, first
// qualifying tier wins, no accumulation across tiers:
//
//  1. contiguous substring: 100 + 1000/(runes+1), biasing shorter (more
//     specific) candidates
//  2. token overlap: 50 + 10 per query token (>2 runes) contained in the
//     candidate
//  3. distinct shared runes: 5 per rune, the weakest signal
//
// Matching is case-insensitive via Unicode lowercasing; Urdu script has no
// case and passes through unchanged. Both operands are NFC-normalized so
// stored text in decomposed or presentation forms cannot defeat the
// substring tier. Pure function of its inputs.
func score(candidate, query string) float64 {
	if candidate == "" || query == "" {
		return 0
	}

	cand := strings.ToLower(norm.NFC.String(candidate))
	q := strings.ToLower(norm.NFC.String(query))

	if strings.Contains(cand, q) {
		return 100 + 1000/float64(utf8.RuneCountInString(cand)+1)
	}

	overlap := 0
	for _, token := range strings.Fields(q) {
		if utf8.RuneCountInString(token) > 2 && strings.Contains(cand, token) {
			overlap++
		}
	}
	if overlap > 0 {
		return 50 + 10*float64(overlap)
	}

	queryRunes := make(map[rune]struct{})
	for _, r := range q {
		queryRunes[r] = struct{}{}
	}
	shared := make(map[rune]struct{})
	for _, r := range cand {
		if _, ok := queryRunes[r]; ok {
			shared[r] = struct{}{}
		}
	}
	return 5 * float64(len(shared))
}
