package verse

import (
	"context"
	"fmt"
	"testing"

	"github.com/sukhanhub/sukhan/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchTextFn         func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	scanFn               func(ctx context.Context, pattern string) ([]string, error)
	hGetAllMultiFn       func(ctx context.Context, keys []string) ([]map[string]string, error)
	supportsTextSearchFn func(ctx context.Context) bool

	searchTextCalls int
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	m.searchTextCalls++
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hGetAllMultiFn != nil {
		return m.hGetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) SupportsTextSearch(ctx context.Context) bool {
	if m.supportsTextSearchFn != nil {
		return m.supportsTextSearchFn(ctx)
	}
	return true
}

func newTestRepo(t *testing.T, coll Collection) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, coll, nil), ms
}

// fixedKeys returns n poem keys under the test prefix.
func fixedKeys(prefix string, n int) []string {
	keys := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		keys = append(keys, fmt.Sprintf("%s%d", prefix, i))
	}
	return keys
}
