package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SearchChecker reports whether the ranked full-text primitive is
// usable on the connected backend.
type SearchChecker interface {
	SupportsTextSearch(ctx context.Context) bool
}
