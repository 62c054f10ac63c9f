// Package repository defines the rollup store contract and its adapters.
//
// The store holds one document per contributor: lifetime totals plus a
// bounded recent-activity timeline, refreshed by an external batch process.
// This engine only ever reads it. Documents are surfaced raw (two historical
// schemas coexist); decoding belongs to the normalize package.
package repository

import "context"

// Store provides read-only access to contributor rollup documents.
// Implementations own a pooled connection with process lifecycle: created
// once at startup, closed at shutdown, shared across requests.
type Store interface {
	// ListRollups returns every stored contributor document.
	ListRollups(ctx context.Context) ([]map[string]any, error)

	// GetRollup returns the document for one contributor handle.
	// Returns ErrNotFound if the handle is unknown.
	GetRollup(ctx context.Context, handle string) (map[string]any, error)

	// Count returns the number of stored contributors.
	Count(ctx context.Context) int

	// Close releases the underlying connection resources.
	Close() error
}

// docHandle extracts the contributor identity from a raw document,
// accepting both historical field names.
func docHandle(doc map[string]any) string {
	if h, ok := doc["handle"].(string); ok && h != "" {
		return h
	}
	if h, ok := doc["username"].(string); ok && h != "" {
		return h
	}
	return ""
}
