package search

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sukhanhub/sukhan/internal/domain/lang"
	"github.com/sukhanhub/sukhan/internal/domain/verse"
)

// Result is one ranked search hit with the variant chosen for display.
type Result struct {
	Text     string     `json:"text"`
	Kind     verse.Kind `json:"type"`
	ID       string     `json:"id"`
	ParentID string     `json:"parentId,omitempty"`
	Lang     lang.Lang  `json:"language"`
}

// Pagination describes the page window the results were cut from.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Response is the full search envelope.
type Response struct {
	Results    []Result   `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// Params carries the normalized inputs of a search request.
type Params struct {
	Query    string
	Kind     verse.Kind
	ParentID string
	Page     int
	Limit    int
}

// Service runs paginated full-text search over the verse collections.
// Unlike suggestions there is no degraded tier here: a page of results
// is only meaningful when the ranked primitive is available, so backend
// failures surface to the caller.
type Service struct {
	poems       Repository
	stanzas     Repository
	defaultSize int
	maxSize     int
	logger      *zap.Logger
}

// New creates a search service.
func New(poems, stanzas Repository, defaultSize, maxSize int, logger *zap.Logger) *Service {
	return &Service{
		poems:       poems,
		stanzas:     stanzas,
		defaultSize: defaultSize,
		maxSize:     maxSize,
		logger:      logger,
	}
}

// Search runs one paginated query against the collection matching
// p.Kind. An empty query returns an empty envelope without touching the
// backend. Page and limit are clamped rather than rejected.
func (s *Service) Search(ctx context.Context, p Params) (Response, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = s.defaultSize
	}
	if limit > s.maxSize {
		limit = s.maxSize
	}

	query := strings.TrimSpace(norm.NFC.String(p.Query))
	if query == "" {
		return Response{
			Results:    []Result{},
			Pagination: Pagination{Page: page, Limit: limit},
		}, nil
	}

	repo := s.poems
	if p.Kind == verse.KindContent {
		repo = s.stanzas
	}

	offset := (page - 1) * limit
	records, total, err := repo.Search(ctx, query, p.ParentID, offset, limit)
	if err != nil {
		return Response{}, err
	}

	detected := lang.Detect(query)
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		text, chosen, ok := pickVariant(rec, detected)
		if !ok {
			continue
		}
		results = append(results, Result{
			Text:     text,
			Kind:     repo.Kind(),
			ID:       rec.ID,
			ParentID: rec.ParentID,
			Lang:     chosen,
		})
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Response{
		Results: results,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}, nil
}

// pickVariant returns the first non-empty variant in the detected
// language's priority order. Ranking already happened in the backend,
// so only display selection is left here.
func pickVariant(rec verse.Record, detected lang.Lang) (string, lang.Lang, bool) {
	for _, l := range lang.Priority(detected) {
		if text := rec.Texts.Get(l); text != "" {
			return text, l, true
		}
	}
	return "", "", false
}
