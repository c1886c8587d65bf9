// Package verse holds the read-only content projections the search core
// ranks: poem titles and stanza bodies, each carried in up to three parallel
// language variants.
package verse

import "github.com/sukhanhub/sukhan/internal/domain/lang"

// Kind distinguishes the two content collections.
type Kind string

const (
	// KindPoem identifies poem title records.
	KindPoem Kind = "poem"
	// KindContent identifies stanza body records.
	KindContent Kind = "content"
)

// Texts holds the per-language variant texts of a record.
// An empty string means the variant is absent.
type Texts struct {
	Urdu    string
	Roman   string
	English string
}

// Get returns the variant text for a language tag.
func (t Texts) Get(l lang.Lang) string {
	switch l {
	case lang.Urdu:
		return t.Urdu
	case lang.Roman:
		return t.Roman
	case lang.English:
		return t.English
	}
	return ""
}

// Empty reports whether no variant is present.
func (t Texts) Empty() bool {
	return t.Urdu == "" && t.Roman == "" && t.English == ""
}

// Record is a read-only projection of one poem title or stanza body,
// fetched fresh per request and discarded after the response.
type Record struct {
	ID       string
	ParentID string // book for poems, poem for stanzas
	Order    int
	Texts    Texts
}
