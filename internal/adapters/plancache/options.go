package plancache

// Option applies a configuration option to the Cache.
type Option func(*lruCache)

// WithMaxSize bounds the number of cached plans. Zero or a negative size
// disables caching.
func WithMaxSize(maxSize int) Option {
	return func(c *lruCache) {
		c.maxSize = maxSize
	}
}
