package core

import (
	"fmt"
	"strings"
)

type ResolutionConfig struct {
	IndexedThreshold int `koanf:"indexed_threshold" mapstructure:"indexed_threshold"`
}

type SlotsConfig struct {
	StackLimit int `koanf:"stack_limit" mapstructure:"stack_limit"`
}

type ObservabilityConfig struct {
	LogTransactions bool `koanf:"log_transactions" mapstructure:"log_transactions"`
}

type Config struct {
	ServiceName   string              `koanf:"service_name" mapstructure:"service_name"`
	Resolution    ResolutionConfig    `koanf:"resolution" mapstructure:"resolution"`
	Slots         SlotsConfig         `koanf:"slots" mapstructure:"slots"`
	Observability ObservabilityConfig `koanf:"observability" mapstructure:"observability"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "inventory",
		Resolution: ResolutionConfig{
			IndexedThreshold: DefaultIndexedThreshold,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Resolution.IndexedThreshold < 0 {
		return fmt.Errorf("core: invalid resolution.indexed_threshold %d", c.Resolution.IndexedThreshold)
	}
	if c.Slots.StackLimit < 0 {
		return fmt.Errorf("core: invalid slots.stack_limit %d", c.Slots.StackLimit)
	}
	return nil
}
