// Package suggest assembles ranked type-ahead suggestions across the poem
// and stanza collections.
package suggest

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/sukhanhub/sukhan/internal/domain/lang"
	"github.com/sukhanhub/sukhan/internal/domain/verse"
	"github.com/sukhanhub/sukhan/internal/metrics"
)

const (
	// minQueryRunes gates retrieval: single characters fan out too wide.
	minQueryRunes = 2
	// retrievalCeiling caps raw rows per collection before scoring.
	retrievalCeiling = 15
	// maxPoemSuggestions / maxStanzaSuggestions bound each collection's
	// share; maxSuggestions bounds the merged list.
	maxPoemSuggestions   = 7
	maxStanzaSuggestions = 5
	maxSuggestions       = 10
	maxCommonTerms       = 12
	// stanzaDisplayRunes caps stanza suggestion text, with an ellipsis
	// marker when cut.
	stanzaDisplayRunes = 50
)

// Mode selects the suggestion behavior for a request.
type Mode int

const (
	// ModeNormal ranks suggestions for a typed query.
	ModeNormal Mode = iota
	// ModeCommonTerms serves the shuffled curated list instead.
	ModeCommonTerms
	// ModePostSelection suppresses suggestions after a dropdown click.
	ModePostSelection
)

// Response is the outcome of one suggestion request. Suggestions is never
// nil: "no suggestions" is a normal outcome, and Degraded marks the soft
// failure where both collections were unreachable. CommonTerms is set only
// in ModeCommonTerms, where the ranked list stays empty.
type Response struct {
	Suggestions []verse.Suggestion
	CommonTerms []string
	Detected    lang.Lang
	Degraded    bool
}

// Service orchestrates language detection, retrieval, variant selection,
// scoring, and truncation. Stateless per request.
type Service struct {
	poems   Retriever
	stanzas Retriever
	terms   []string
	logger  *zap.Logger
}

// New creates a suggestion service over the two content collections.
func New(poems, stanzas Retriever, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		poems:   poems,
		stanzas: stanzas,
		terms:   defaultCommonTerms,
		logger:  logger,
	}
}

// WithCommonTerms replaces the curated term list (config override).
func (s *Service) WithCommonTerms(terms []string) *Service {
	if len(terms) > 0 {
		s.terms = terms
	}
	return s
}

// Suggest ranks type-ahead suggestions for a query. It never returns an
// error: every internal failure degrades to an empty, marked response.
func (s *Service) Suggest(ctx context.Context, rawQuery string, mode Mode) Response {
	query := norm.NFC.String(strings.TrimSpace(rawQuery))
	detected := lang.Detect(query)
	resp := Response{Suggestions: []verse.Suggestion{}, Detected: detected}

	if mode == ModeCommonTerms {
		resp.CommonTerms = s.CommonTerms()
		return resp
	}
	if mode == ModePostSelection {
		return resp
	}
	if utf8.RuneCountInString(query) < minQueryRunes {
		return resp
	}

	var poemRecs, stanzaRecs []verse.Record
	var poemErr, stanzaErr error

	// The two collections are independent; fetch them concurrently and
	// keep whichever side survived.
	g := new(errgroup.Group)
	g.Go(func() error {
		poemRecs, poemErr = s.poems.Retrieve(ctx, query, detected, retrievalCeiling)
		return nil
	})
	g.Go(func() error {
		stanzaRecs, stanzaErr = s.stanzas.Retrieve(ctx, query, detected, retrievalCeiling)
		return nil
	})
	_ = g.Wait()

	if poemErr != nil && stanzaErr != nil {
		s.logger.Warn("suggestion retrieval failed on both collections",
			zap.String("detected", string(detected)),
			zap.NamedError("poems", poemErr),
			zap.NamedError("stanzas", stanzaErr),
		)
		metrics.SuggestDegradedTotal.Inc()
		resp.Degraded = true
		return resp
	}
	if poemErr != nil {
		s.logger.Warn("poem retrieval failed, serving stanza suggestions only", zap.Error(poemErr))
	}
	if stanzaErr != nil {
		s.logger.Warn("stanza retrieval failed, serving poem suggestions only", zap.Error(stanzaErr))
	}

	merged := s.rank(poemRecs, query, detected, verse.KindPoem, maxPoemSuggestions)
	merged = append(merged, s.rank(stanzaRecs, query, detected, verse.KindContent, maxStanzaSuggestions)...)
	if len(merged) > maxSuggestions {
		merged = merged[:maxSuggestions]
	}

	metrics.SuggestResultCount.Observe(float64(len(merged)))
	resp.Suggestions = merged
	return resp
}

// rank turns raw records into scored suggestions, sorted descending and
// capped at top. Stanza texts are reduced to their display form before
// scoring, matching how they are shown.
func (s *Service) rank(
	records []verse.Record, query string, detected lang.Lang, kind verse.Kind, top int,
) []verse.Suggestion {
	candidates := make([]verse.Suggestion, 0, len(records))
	for _, rec := range records {
		text, l, ok := selectVariant(rec, query, detected)
		if !ok {
			continue
		}
		if kind == verse.KindContent {
			text = displayStanza(text)
		}
		candidates = append(candidates, verse.Suggestion{
			Text:     text,
			Kind:     kind,
			ID:       rec.ID,
			ParentID: rec.ParentID,
			Lang:     l,
			Score:    score(text, query),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > top {
		candidates = candidates[:top]
	}
	return candidates
}

// displayStanza reduces a multi-part stanza body ("line|line|...") to its
// first segment, capped for the dropdown.
func displayStanza(text string) string {
	if i := strings.IndexByte(text, '|'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > stanzaDisplayRunes {
		text = string(runes[:stanzaDisplayRunes]) + "..."
	}
	return text
}
