package suggest

import (
	"context"

	"github.com/sukhanhub/sukhan/internal/domain/lang"
	"github.com/sukhanhub/sukhan/internal/domain/verse"
)

// Retriever fetches candidate records for one content collection.
// Implementations absorb primary ranked-search failures internally and only
// error when their fallback tier fails too.
type Retriever interface {
	Retrieve(ctx context.Context, query string, detected lang.Lang, limit int) ([]verse.Record, error)
	Kind() verse.Kind
}
