package verse

import "github.com/sukhanhub/sukhan/internal/domain/lang"

// Suggestion is one ranked type-ahead result. Score stays internal: it is
// deterministic for a given (record, query) pair and tests rely on that,
// but clients only see the ordering it produces.
type Suggestion struct {
	Text     string    `json:"text"`
	Kind     Kind      `json:"type"`
	ID       string    `json:"id"`
	ParentID string    `json:"parentId"`
	Lang     lang.Lang `json:"language"`
	Score    float64   `json:"-"`
}
