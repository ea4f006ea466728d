package config

import (
	"fmt"
	"net/url"
	"time"
)

type SupplyConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *SupplyConfig) Validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("supply URL must be set")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return fmt.Errorf("invalid supply URL: %w", err)
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

	return nil
}
