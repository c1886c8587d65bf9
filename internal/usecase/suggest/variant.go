package suggest

import (
	"github.com/sukhanhub/sukhan/internal/domain/lang"
	"github.com/sukhanhub/sukhan/internal/domain/verse"
)

// selectVariant picks the record field that best matches the query.
// Fields are visited in the detected language's priority order, so ties —
// including the all-zero case where only character overlap applies — resolve
// to the first present field in that order. A record with no variant at all
// yields no candidate (ok=false).
func selectVariant(rec verse.Record, query string, detected lang.Lang) (string, lang.Lang, bool) {
	best := -1.0
	var bestText string
	var bestLang lang.Lang

	for _, l := range lang.Priority(detected) {
		text := rec.Texts.Get(l)
		if text == "" {
			continue
		}
		if sc := score(text, query); sc > best {
			best = sc
			bestText = text
			bestLang = l
		}
	}

	if bestText == "" {
		return "", "", false
	}
	return bestText, bestLang, true
}
