package verse

import (
	"strconv"
	"strings"

	"github.com/sukhanhub/sukhan/internal/domain/lang"
	domverse "github.com/sukhanhub/sukhan/internal/domain/verse"
)

// recordFromHash projects a stored hash into a domain record.
func (r *Repo) recordFromHash(key string, fields map[string]string) domverse.Record {
	rec := domverse.Record{
		ID:       strings.TrimPrefix(key, r.coll.KeyPrefix),
		ParentID: fields[r.coll.ParentColumn],
		Texts: domverse.Texts{
			Urdu:    fields[r.coll.Columns[lang.Urdu]],
			Roman:   fields[r.coll.Columns[lang.Roman]],
			English: fields[r.coll.Columns[lang.English]],
		},
	}
	if v := fields[r.coll.OrderColumn]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rec.Order = n
		}
	}
	return rec
}
