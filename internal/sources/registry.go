package sources

import (
	"fmt"

	"github.com/maxaizer/jobhub-importer/internal/config"
)

// NewFromConfig builds the enabled sources in configured order. httpClient may be nil.
func NewFromConfig(cfg config.SourcesConfig, httpClient HTTPClient) ([]Source, error) {
	f := newFetcher(httpClient, cfg.RequestTimeout, cfg.MaxRequestsPerSecond)

	var result []Source
	for _, name := range cfg.Enabled {
		switch name {
		case config.SourceLinkedIn:
			result = append(result, NewLinkedIn(f))
		case config.SourceAdzuna:
			result = append(result, NewAdzuna(f, cfg.AdzunaAppID, cfg.AdzunaAppKey))
		case config.SourceRemotive:
			result = append(result, NewRemotive(f))
		case config.SourceArbeitnow:
			result = append(result, NewArbeitnow(f))
		case config.SourceRSS:
			feeds, err := LoadFeeds(cfg.RSSFeedsFile)
			if err != nil {
				return nil, err
			}
			result = append(result, NewRSS(f, feeds))
		default:
			return nil, fmt.Errorf("unknown source %q", name)
		}
	}
	return result, nil
}
