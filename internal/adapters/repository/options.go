package repository

// storeConfig collects constructor options for SessionStore.
type storeConfig struct {
	shardCount int
}

// Option applies a configuration option to the SessionStore.
type Option func(*storeConfig)

// WithShardCount sets the number of map shards.
func WithShardCount(n int) Option {
	return func(c *storeConfig) {
		if n > 0 {
			c.shardCount = n
		}
	}
}
