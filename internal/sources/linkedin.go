package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/maxaizer/jobhub-importer/internal/domain/models"
)

const (
	linkedInSearchURL  = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"
	linkedInJobURL     = "https://www.linkedin.com/jobs/view/%s/"
	linkedInMaxResults = 25
)

var linkedInLocations = map[string]string{
	"en": "United States",
	"it": "Italy",
	"es": "Spain",
	"fr": "France",
	"de": "Germany",
}

var (
	jobPostingIDRe = regexp.MustCompile(`jobPosting:(\d+)`)
	remoteMarkers  = []string{"remote", "remoto", "télétravail", "homeoffice", "home office"}
)

// LinkedIn parses the public guest search, which answers with bare job cards and no descriptions.
type LinkedIn struct {
	*fetcher
}

func NewLinkedIn(f *fetcher) *LinkedIn {
	return &LinkedIn{fetcher: f}
}

func (l *LinkedIn) Name() string {
	return "LinkedIn"
}

func (l *LinkedIn) Capabilities() Capabilities {
	return Capabilities{}
}

func (l *LinkedIn) Scrape(ctx context.Context, query Query) ([]models.RawJob, error) {
	location, ok := linkedInLocations[query.Lang]
	if !ok {
		location = linkedInLocations["en"]
	}

	params := url.Values{}
	params.Set("keywords", query.Keyword)
	params.Set("location", location)
	params.Set("start", "0")

	body, err := l.get(ctx, linkedInSearchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}

	var jobs []models.RawJob
	doc.Find("div.base-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if job, ok := l.parseCard(card, query.Lang); ok {
			jobs = append(jobs, job)
		}
		return len(jobs) < linkedInMaxResults
	})
	return jobs, nil
}

func (l *LinkedIn) parseCard(card *goquery.Selection, lang string) (models.RawJob, bool) {
	jobID := ""
	if match := jobPostingIDRe.FindStringSubmatch(card.AttrOr("data-entity-urn", "")); match != nil {
		jobID = match[1]
	}

	title := strings.TrimSpace(card.Find("h3.base-search-card__title").First().Text())
	if title == "" {
		return models.RawJob{}, false
	}

	link, _, _ := strings.Cut(card.Find("a.base-card__full-link").First().AttrOr("href", ""), "?")
	link = strings.TrimSpace(link)
	if link == "" && jobID != "" {
		link = fmt.Sprintf(linkedInJobURL, jobID)
	}
	if link == "" {
		return models.RawJob{}, false
	}

	company := strings.TrimSpace(card.Find("h4.base-search-card__subtitle").First().Text())
	if company == "" {
		company = "Unknown"
	}

	logo := card.Find("img.artdeco-entity-image").First()
	logoURL := logo.AttrOr("data-delayed-url", "")
	if logoURL == "" {
		logoURL = logo.AttrOr("src", "")
	}

	location := strings.TrimSpace(card.Find("span.job-search-card__location").First().Text())

	var publishedAt models.RawDate
	date := card.Find("time.job-search-card__listdate, time.job-search-card__listdate--new").First()
	if value, ok := date.Attr("datetime"); ok && value != "" {
		publishedAt = value
	}

	remote := isRemote(title, location)
	return models.RawJob{
		Title:            title,
		Link:             link,
		Company:          models.Company{Name: company, Logo: logoURL},
		Source:           l.Name(),
		OriginalLanguage: lang,
		PublishedAt:      publishedAt,
		LocationRaw:      location,
		Remote:           &remote,
		ExternalID:       jobID,
	}, true
}

func isRemote(title, location string) bool {
	text := strings.ToLower(title + " " + location)
	for _, marker := range remoteMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
