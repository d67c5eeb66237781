package ssbkeys

import "io"

// boxConfig holds configuration for Box and SecretBox.
type boxConfig struct {
	rand io.Reader
}

// BoxOption configures Box and SecretBox.
type BoxOption func(*boxConfig)

// WithRandom sets the random source for ephemeral keys, body keys and
// nonces. The default is crypto/rand.
func WithRandom(r io.Reader) BoxOption {
	return func(c *boxConfig) {
		c.rand = r
	}
}

func newBoxConfig(opts []BoxOption) *boxConfig {
	cfg := &boxConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
