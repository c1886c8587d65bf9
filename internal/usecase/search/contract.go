package search

import (
	"context"

	"github.com/sukhanhub/sukhan/internal/domain/verse"
)

// Repository runs the ranked full-text primitive with pagination for a
// single collection and reports the backend's total match count.
type Repository interface {
	Search(ctx context.Context, query, parentID string, offset, limit int) ([]verse.Record, int, error)
	Kind() verse.Kind
}
