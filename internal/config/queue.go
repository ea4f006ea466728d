package config

import (
	"errors"
	"time"
)

type QueueConfig struct {
	ProcessingTimeout time.Duration `mapstructure:"processing-timeout"`
	Capacity          int           `mapstructure:"capacity"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.ProcessingTimeout <= 0 {
		return errors.New("processing-timeout must be positive")
	}
	if cfg.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}

	return nil
}
