package suggest

import (
	"context"
	"fmt"

	"github.com/sukhanhub/sukhan/internal/domain/lang"
	"github.com/sukhanhub/sukhan/internal/domain/verse"
)

// mockRetriever implements Retriever for tests.
type mockRetriever struct {
	kind    verse.Kind
	records []verse.Record
	err     error

	calls        int
	lastQuery    string
	lastDetected lang.Lang
	lastLimit    int
}

func (m *mockRetriever) Retrieve(
	_ context.Context, query string, detected lang.Lang, limit int,
) ([]verse.Record, error) {
	m.calls++
	m.lastQuery = query
	m.lastDetected = detected
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if len(m.records) > limit {
		return m.records[:limit], nil
	}
	return m.records, nil
}

func (m *mockRetriever) Kind() verse.Kind { return m.kind }

func newTestService() (*Service, *mockRetriever, *mockRetriever) {
	poems := &mockRetriever{kind: verse.KindPoem}
	stanzas := &mockRetriever{kind: verse.KindContent}
	return New(poems, stanzas, nil), poems, stanzas
}

// englishPoems builds n poem records whose English titles all contain needle.
func englishPoems(n int, needle string) []verse.Record {
	records := make([]verse.Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, verse.Record{
			ID:       fmt.Sprintf("p%d", i),
			ParentID: "book-1",
			Texts:    verse.Texts{English: fmt.Sprintf("%s poem %d", needle, i)},
		})
	}
	return records
}

// englishStanzas builds n stanza records whose English bodies all contain needle.
func englishStanzas(n int, needle string) []verse.Record {
	records := make([]verse.Record, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, verse.Record{
			ID:       fmt.Sprintf("s%d", i),
			ParentID: "poem-1",
			Texts:    verse.Texts{English: fmt.Sprintf("%s stanza %d", needle, i)},
		})
	}
	return records
}
