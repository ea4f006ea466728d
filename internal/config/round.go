package config

import (
	"errors"
	"time"
)

const defaultRoundCycleTime = time.Hour

type RoundConfig struct {
	// LastKnownHeight and LastKnownRound pin the round that keeps being
	// re-processed once the chain moves past LastKnownHeight. Only used when
	// FrozenTailEnabled is set.
	LastKnownHeight   uint64 `mapstructure:"last-known-height"`
	LastKnownRound    uint32 `mapstructure:"last-known-round"`
	FrozenTailEnabled bool   `mapstructure:"frozen-tail-enabled"`
	// CycleTime is reported as is, it doesn't drive any scheduling.
	CycleTime time.Duration `mapstructure:"cycle-time"`
}

func (cfg *RoundConfig) Validate() error {
	if cfg.FrozenTailEnabled && cfg.LastKnownHeight == 0 {
		return errors.New("last-known-height must be set when frozen-tail-enabled is true")
	}
	if cfg.CycleTime < 0 {
		return errors.New("cycle-time must not be negative")
	}
	if cfg.CycleTime == 0 {
		cfg.CycleTime = defaultRoundCycleTime
	}

	return nil
}
