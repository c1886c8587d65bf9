// Package domain holds cross-cutting sentinel errors for the search core.
package domain

import "errors"

var (
	// ErrRetrievalUnavailable signals a failed primary ranked-search call.
	// It triggers the substring fallback and never reaches the client.
	ErrRetrievalUnavailable = errors.New("ranked retrieval unavailable")
	// ErrRetrievalFailed signals that the substring fallback failed too.
	// The suggestion path degrades to an empty result on it.
	ErrRetrievalFailed = errors.New("retrieval failed")
	// ErrBackendUnavailable signals a backend failure on the full-search
	// path, which has no fallback tier and surfaces the outage.
	ErrBackendUnavailable = errors.New("search backend unavailable")
)
