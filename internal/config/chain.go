package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultMaxConcurrentReads = 16
	defaultRequestsPerSecond  = 50
	// prefix 30 is the Phala network address format
	defaultSS58Prefix = 30
	maxSS58Prefix     = 16383
)

type ChainConfig struct {
	// Endpoint is the websocket URL of the node, e.g. wss://khala-api.phala.network/ws
	Endpoint          string        `mapstructure:"endpoint"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetryTimes     uint          `mapstructure:"max-retry-times"`
	RetryInterval     time.Duration `mapstructure:"retry-interval"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
	// MaxConcurrentReads bounds the per-key storage fetches of a single snapshot.
	MaxConcurrentReads int    `mapstructure:"max-concurrent-reads"`
	SS58Prefix         uint16 `mapstructure:"ss58-prefix"`
}

func (cfg *ChainConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("chain endpoint is required")
	}
	if !strings.HasPrefix(cfg.Endpoint, "ws://") && !strings.HasPrefix(cfg.Endpoint, "wss://") {
		return fmt.Errorf("chain endpoint must be a websocket url, got %q", cfg.Endpoint)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("retry-interval must be positive")
	}
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests-per-second must be positive")
	}
	if cfg.MaxConcurrentReads <= 0 {
		cfg.MaxConcurrentReads = defaultMaxConcurrentReads
	}
	if cfg.SS58Prefix > maxSS58Prefix {
		return fmt.Errorf("ss58-prefix %d out of range", cfg.SS58Prefix)
	}

	return nil
}
