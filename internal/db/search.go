package db

// TextQuery is the input for a ranked full-text search.
type TextQuery struct {
	IndexName string
	// Query is the raw user text; the driver escapes it for the query
	// syntax of the backend.
	Query string
	// Fields optionally scopes matching to the named text columns.
	// Empty means all text columns of the index.
	Fields []string
	// TagFilters ANDs exact tag constraints onto the query
	// (e.g. book_id -> "12").
	TagFilters map[string]string
	Offset     int
	Limit      int
}

// SearchEntry is a single hit returned by the backend.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is a page of hits plus the backend's total match count.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}
