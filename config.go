package bevybrp

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config for the introspection service. Defaults can be loaded from the
// environment via envdecode.
type Config struct {
	// TargetURL is where the BRP target listens. ENV: BRP_URL
	TargetURL string `env:"BRP_URL,default=http://127.0.0.1:15702"`
	// HTTPTimeout bounds every wire call. ENV: BRP_HTTP_TIMEOUT
	HTTPTimeout time.Duration `env:"BRP_HTTP_TIMEOUT,default=10s"`
	// DepthLimit bounds the mutation-path recursion.
	// ENV: BRP_MUTATION_DEPTH_LIMIT
	DepthLimit int `env:"BRP_MUTATION_DEPTH_LIMIT,default=10"`
}

// ConfigFromEnv populates a Config from the environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config from environment: %w", err)
	}
	return cfg, nil
}

// validate normalizes a possibly hand-built Config.
func (c *Config) validate() {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	if c.DepthLimit <= 0 {
		c.DepthLimit = 10
	}
}
