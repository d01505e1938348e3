package config

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

const (
	SourceLinkedIn  = "linkedin"
	SourceAdzuna    = "adzuna"
	SourceRemotive  = "remotive"
	SourceArbeitnow = "arbeitnow"
	SourceRSS       = "rss"
)

var DefaultSources = []string{SourceLinkedIn, SourceAdzuna, SourceRemotive, SourceArbeitnow, SourceRSS}

type SourcesConfig struct {
	Enabled              []string      `mapstructure:"enabled"`
	AdzunaAppID          string        `mapstructure:"adzuna_app_id"`
	AdzunaAppKey         string        `mapstructure:"adzuna_app_key"`
	RSSFeedsFile         string        `mapstructure:"rss_feeds_file"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
}

func (config SourcesConfig) validate() error {
	unknown := lo.Without(config.Enabled, DefaultSources...)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown sources: %v", unknown)
	}
	if lo.Contains(config.Enabled, SourceRSS) && config.RSSFeedsFile == "" {
		return fmt.Errorf("missing variable: rss_feeds_file")
	}
	return nil
}

func (config SourcesConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"sources.adzuna_app_id":  "ADZUNA_APP_ID",
		"sources.adzuna_app_key": "ADZUNA_APP_KEY",
	})
}
