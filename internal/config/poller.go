package config

import (
	"fmt"
	"time"
)

const (
	defaultRuntimeVersionPollingInterval = 5 * time.Minute
	minRuntimeVersionPollingInterval     = time.Second
)

type PollerConfig struct {
	RuntimeVersionPollingInterval time.Duration `mapstructure:"runtime-version-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.RuntimeVersionPollingInterval < minRuntimeVersionPollingInterval {
		return fmt.Errorf("runtime-version-polling-interval must be at least %s", minRuntimeVersionPollingInterval)
	}

	return nil
}
