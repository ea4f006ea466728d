package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "STAKEPAD"

type Config struct {
	Chain   ChainConfig   `mapstructure:"chain"`
	Db      DbConfig      `mapstructure:"db"`
	Round   RoundConfig   `mapstructure:"round"`
	Queue   QueueConfig   `mapstructure:"queue"`
	Supply  SupplyConfig  `mapstructure:"supply"`
	Poller  PollerConfig  `mapstructure:"poller"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Chain.Validate(); err != nil {
		return fmt.Errorf("chain: %w", err)
	}
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := cfg.Round.Validate(); err != nil {
		return fmt.Errorf("round: %w", err)
	}
	if err := cfg.Queue.Validate(); err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	if err := cfg.Supply.Validate(); err != nil {
		return fmt.Errorf("supply: %w", err)
	}
	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	return nil
}

// New loads the YAML file at cfgFile. Any key can be overridden from the
// environment, e.g. STAKEPAD_DB_PASSWORD for db.password.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain.ss58-prefix", defaultSS58Prefix)
	v.SetDefault("chain.requests-per-second", defaultRequestsPerSecond)
	v.SetDefault("round.cycle-time", defaultRoundCycleTime)
	v.SetDefault("poller.runtime-version-polling-interval", defaultRuntimeVersionPollingInterval)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
