// Package verse retrieves poem-title and stanza-body records for ranking.
// Retrieval is two-tier: a ranked full-text primary and a substring-scan
// fallback that keeps suggestions available when no text index exists.
package verse

import (
	"github.com/sukhanhub/sukhan/internal/domain/lang"
	domverse "github.com/sukhanhub/sukhan/internal/domain/verse"
)

// Collection describes one content collection's storage layout.
type Collection struct {
	Name         string // metrics/log label
	Kind         domverse.Kind
	KeyPrefix    string // hash key prefix, e.g. "sukhan:poems:"
	Index        string // FT index name
	Columns      map[lang.Lang]string
	ParentColumn string // book_id for poems, poem_id for stanzas
	OrderColumn  string
}

// Poems is the poem-titles collection under the given storage prefix.
func Poems(storagePrefix string) Collection {
	return Collection{
		Name:      "poems",
		Kind:      domverse.KindPoem,
		KeyPrefix: storagePrefix + "poems:",
		Index:     storagePrefix + "poems:idx",
		Columns: map[lang.Lang]string{
			lang.Urdu:    "title_ur",
			lang.Roman:   "title_ro",
			lang.English: "title_en",
		},
		ParentColumn: "book_id",
		OrderColumn:  "sort_order",
	}
}

// Stanzas is the stanza-bodies collection under the given storage prefix.
func Stanzas(storagePrefix string) Collection {
	return Collection{
		Name:      "stanzas",
		Kind:      domverse.KindContent,
		KeyPrefix: storagePrefix + "stanzas:",
		Index:     storagePrefix + "stanzas:idx",
		Columns: map[lang.Lang]string{
			lang.Urdu:    "body_ur",
			lang.Roman:   "body_ro",
			lang.English: "body_en",
		},
		ParentColumn: "poem_id",
		OrderColumn:  "sort_order",
	}
}

// textColumns returns all variant columns in a fixed order.
func (c Collection) textColumns() []string {
	return []string{
		c.Columns[lang.Urdu],
		c.Columns[lang.Roman],
		c.Columns[lang.English],
	}
}

// fallbackColumns returns the columns the substring fallback matches for a
// detected language: Urdu and English scope to their own column, Roman is
// ambiguous between Latin-script columns and matches Roman OR English.
func (c Collection) fallbackColumns(detected lang.Lang) []string {
	switch detected {
	case lang.Urdu:
		return []string{c.Columns[lang.Urdu]}
	case lang.Roman:
		return []string{c.Columns[lang.Roman], c.Columns[lang.English]}
	default:
		return []string{c.Columns[lang.English]}
	}
}
