package config

import "fmt"

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

func (config MetricsConfig) validate() error {
	if config.Enabled && (config.Port <= 0 || config.Port > 65535) {
		return fmt.Errorf("invalid metrics port: %v", config.Port)
	}
	return nil
}

func (config MetricsConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"metrics.enabled": "METRICS_ENABLED",
		"metrics.port":    "METRICS_PORT",
	})
}
