package config

import (
	"fmt"
)

type AIConfig struct {
	Key                  string  `mapstructure:"key"`
	Model                string  `mapstructure:"model"`
	MaxRequestsPerMinute float32 `mapstructure:"max_requests_per_minute"`
	MaxRequestsPerDay    float32 `mapstructure:"max_requests_per_day"`
}

func (config AIConfig) validate() error {
	if config.Key == "" {
		return fmt.Errorf("missing variable: ai key")
	}
	if config.Model == "" {
		return fmt.Errorf("missing variable: ai model")
	}
	return nil
}

func (config AIConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"ai.key":                     "AI_KEY",
		"ai.model":                   "AI_MODEL",
		"ai.max_requests_per_minute": "AI_MAX_REQUESTS_PER_MINUTE",
		"ai.max_requests_per_day":    "AI_MAX_REQUESTS_PER_DAY",
	})
}
