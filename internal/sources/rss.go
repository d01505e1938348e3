package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/maxaizer/jobhub-importer/internal/logger"
	"github.com/mmcdole/gofeed"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const keywordPlaceholder = "{keyword}"

// Feeds maps a language code to the feed URLs published in that language.
type Feeds map[string][]string

func LoadFeeds(path string) (Feeds, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading feeds file: %w", err)
	}

	var feeds Feeds
	if err := yaml.Unmarshal(content, &feeds); err != nil {
		return nil, fmt.Errorf("error decoding feeds file %v: %w", path, err)
	}
	return feeds, nil
}

// RSS reads generic job feeds. A feed item with a broken description points at a
// parsing defect, so RSS descriptions are handled strictly.
type RSS struct {
	*fetcher
	feeds Feeds
}

func NewRSS(f *fetcher, feeds Feeds) *RSS {
	return &RSS{fetcher: f, feeds: feeds}
}

func (r *RSS) Name() string {
	return "RSS Feed"
}

func (r *RSS) Capabilities() Capabilities {
	return Capabilities{StrictDescription: true}
}

func (r *RSS) Scrape(ctx context.Context, query Query) ([]models.RawJob, error) {
	keyword := strings.ToLower(query.Keyword)
	parser := gofeed.NewParser()

	var jobs []models.RawJob
	for _, feedURL := range r.feeds[query.Lang] {
		if strings.Contains(feedURL, keywordPlaceholder) {
			feedURL = strings.ReplaceAll(feedURL, keywordPlaceholder, url.QueryEscape(query.Keyword))
		}

		body, err := r.get(ctx, feedURL)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSource).
				Errorf("error fetching RSS feed %v: %v", feedURL, err)
			continue
		}

		feed, err := parser.Parse(bytes.NewReader(body))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSource).
				Errorf("error parsing RSS feed %v: %v", feedURL, err)
			continue
		}

		for _, item := range feed.Items {
			if !strings.Contains(strings.ToLower(item.Title), keyword) {
				continue
			}
			jobs = append(jobs, r.toRawJob(item, query.Lang))
		}
	}
	return jobs, nil
}

func (r *RSS) toRawJob(item *gofeed.Item, lang string) models.RawJob {
	description := item.Description
	if description == "" {
		description = item.Content
	}

	company := "Unknown"
	if item.Author != nil && item.Author.Name != "" {
		company = item.Author.Name
	}

	job := models.RawJob{
		Title:            strings.TrimSpace(item.Title),
		Link:             strings.TrimSpace(item.Link),
		Description:      description,
		Company:          models.Company{Name: company},
		Source:           r.Name(),
		OriginalLanguage: lang,
		ExternalID:       item.GUID,
	}
	if item.Image != nil {
		job.Company.Logo = item.Image.URL
	}
	switch {
	case item.PublishedParsed != nil:
		job.PublishedAt = item.PublishedParsed.UTC()
	case item.Published != "":
		job.PublishedAt = item.Published
	}
	return job
}
