package config

import "time"

// GeocodingConfig without an api key disables geocoding: jobs are persisted without coordinates.
type GeocodingConfig struct {
	APIKey               string        `mapstructure:"api_key"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

func (config GeocodingConfig) Enabled() bool {
	return config.APIKey != ""
}

func (config GeocodingConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"geocoding.api_key": "GOOGLE_MAPS_API_KEY",
	})
}
