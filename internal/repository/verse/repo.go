package verse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sukhanhub/sukhan/internal/db"
	"github.com/sukhanhub/sukhan/internal/domain"
	"github.com/sukhanhub/sukhan/internal/domain/lang"
	domverse "github.com/sukhanhub/sukhan/internal/domain/verse"
)

// scanChunkSize bounds how many hashes one fallback round-trip fetches.
const scanChunkSize = 100

// store is the consumer interface for retrieval (ISP).
type store interface {
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SupportsTextSearch(ctx context.Context) bool
}

// Repo implements retrieval for one content collection.
type Repo struct {
	store     store
	coll      Collection
	timeout   time.Duration
	fallbacks *prometheus.CounterVec
	logger    *zap.Logger
}

// New creates a retrieval repository for a collection.
func New(s store, coll Collection, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{
		store:   s,
		coll:    coll,
		timeout: 3 * time.Second,
		logger:  logger,
	}
}

// WithTimeout overrides the per-backend-call timeout.
func (r *Repo) WithTimeout(d time.Duration) *Repo {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// WithFallbackCounter wires the fallback metric (labelled by collection).
func (r *Repo) WithFallbackCounter(c *prometheus.CounterVec) *Repo {
	r.fallbacks = c
	return r
}

// Kind returns the collection's content kind.
func (r *Repo) Kind() domverse.Kind {
	return r.coll.Kind
}

// EnsureIndex creates the collection's FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context, mgr db.IndexManager) error {
	def := &db.IndexDefinition{
		Name:     r.coll.Index,
		Prefixes: []string{r.coll.KeyPrefix},
		Fields: []db.IndexField{
			{Name: r.coll.Columns[lang.Urdu], Type: db.IndexFieldText},
			{Name: r.coll.Columns[lang.Roman], Type: db.IndexFieldText},
			{Name: r.coll.Columns[lang.English], Type: db.IndexFieldText},
			{Name: r.coll.ParentColumn, Type: db.IndexFieldTag},
			{Name: r.coll.OrderColumn, Type: db.IndexFieldNumeric},
		},
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("index definition %s: %w", r.coll.Index, err)
	}

	err := mgr.CreateIndex(ctx, def)
	if errors.Is(err, db.ErrIndexExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create index %s: %w", r.coll.Index, err)
	}
	return nil
}

// Retrieve returns up to limit candidate records for a suggestion query.
// The ranked primary is tried first; any primary failure degrades to the
// substring fallback scoped by detected language. Only a fallback failure
// reaches the caller.
func (r *Repo) Retrieve(
	ctx context.Context, query string, detected lang.Lang, limit int,
) ([]domverse.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	records, err := r.primary(ctx, query, limit)
	if err == nil {
		return records, nil
	}

	r.logger.Warn("ranked retrieval degraded to substring fallback",
		zap.String("collection", r.coll.Name),
		zap.Error(err),
	)
	if r.fallbacks != nil {
		r.fallbacks.WithLabelValues(r.coll.Name).Inc()
	}

	records, err = r.fallback(ctx, query, detected, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrRetrievalFailed, r.coll.Name, err)
	}
	return records, nil
}

// Search runs the ranked primitive directly with pagination for the full
// search path. There is no fallback tier here: backend errors surface so
// outages stay visible.
func (r *Repo) Search(
	ctx context.Context, query, parentID string, offset, limit int,
) ([]domverse.Record, int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := &db.TextQuery{
		IndexName: r.coll.Index,
		Query:     query,
		Fields:    r.coll.textColumns(),
		Offset:    offset,
		Limit:     limit,
	}
	if parentID != "" {
		q.TagFilters = map[string]string{r.coll.ParentColumn: parentID}
	}

	result, err := r.store.SearchText(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: search %s: %v", domain.ErrBackendUnavailable, r.coll.Name, err)
	}

	records := make([]domverse.Record, 0, len(result.Entries))
	for _, entry := range result.Entries {
		records = append(records, r.recordFromHash(entry.Key, entry.Fields))
	}
	return records, result.Total, nil
}

func (r *Repo) primary(ctx context.Context, query string, limit int) ([]domverse.Record, error) {
	if !r.store.SupportsTextSearch(ctx) {
		return nil, domain.ErrRetrievalUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: r.coll.Index,
		Query:     query,
		Fields:    r.coll.textColumns(),
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
	}

	records := make([]domverse.Record, 0, len(result.Entries))
	for _, entry := range result.Entries {
		records = append(records, r.recordFromHash(entry.Key, entry.Fields))
	}
	return records, nil
}

// fallback scans the collection's keys and keeps records whose
// language-scoped columns contain the query as a case-insensitive substring.
func (r *Repo) fallback(
	ctx context.Context, query string, detected lang.Lang, limit int,
) ([]domverse.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	keys, err := r.store.Scan(ctx, r.coll.KeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.coll.Name, err)
	}

	needle := strings.ToLower(norm.NFC.String(query))
	columns := r.coll.fallbackColumns(detected)
	records := make([]domverse.Record, 0, limit)

	for start := 0; start < len(keys) && len(records) < limit; start += scanChunkSize {
		end := min(start+scanChunkSize, len(keys))

		rows, err := r.store.HGetAllMulti(ctx, keys[start:end])
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", r.coll.Name, err)
		}

		for i, fields := range rows {
			if !matchesAny(fields, columns, needle) {
				continue
			}
			records = append(records, r.recordFromHash(keys[start+i], fields))
			if len(records) >= limit {
				break
			}
		}
	}

	return records, nil
}

// matchesAny reports whether any of the given columns contains the needle.
// Stored text is NFC-normalized first: hashes loaded from external sources
// may carry decomposed or presentation forms.
func matchesAny(fields map[string]string, columns []string, needle string) bool {
	for _, col := range columns {
		v := fields[col]
		if v == "" {
			continue
		}
		if strings.Contains(strings.ToLower(norm.NFC.String(v)), needle) {
			return true
		}
	}
	return false
}
