package repository

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithDocs seeds the store with raw contributor documents.
func WithDocs(docs []map[string]any) MemOption {
	return func(s *MemStore) {
		s.docs = append(s.docs, docs...)
	}
}
