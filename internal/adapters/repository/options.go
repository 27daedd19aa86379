package repository

// Option applies a configuration option to the CatalogStore.
type Option func(*CatalogStore)

// WithPath loads the catalog from a YAML file instead of the embedded default.
// An empty path keeps the default.
func WithPath(path string) Option {
	return func(s *CatalogStore) {
		if path != "" {
			s.path = path
		}
	}
}

// WithData loads the catalog from raw YAML. It takes precedence over WithPath.
func WithData(data []byte) Option {
	return func(s *CatalogStore) {
		if len(data) > 0 {
			s.data = data
		}
	}
}
