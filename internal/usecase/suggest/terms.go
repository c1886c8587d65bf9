package suggest

import "math/rand"

// defaultCommonTerms is the curated list shown when the search box is empty:
// well-known titles, theme words, and romanized phrases. Loaded once at
// construction; config may override the whole list but never mutates it.
var defaultCommonTerms = []string{
	"Shikwa",
	"Jawab-e-Shikwa",
	"Khizr-e-Rah",
	"Masjid-e-Qurtaba",
	"khudi",
	"ishq",
	"mohabbat",
	"dil",
	"zindagi",
	"watan",
	"shaheen",
	"jugnu",
	"gham-e-dil",
	"sitaron se aage",
}

// CommonTerms returns a freshly shuffled copy of the curated term list,
// truncated to the suggestion-dropdown capacity. The shuffle varies call to
// call; the underlying list is shared and must not be reordered in place.
func (s *Service) CommonTerms() []string {
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if len(out) > maxCommonTerms {
		out = out[:maxCommonTerms]
	}
	return out
}
