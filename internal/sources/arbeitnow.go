package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
)

const arbeitnowURL = "https://www.arbeitnow.com/api/job-board-api"

type arbeitnowResponse struct {
	Data []struct {
		Slug        string   `json:"slug"`
		CompanyName string   `json:"company_name"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Remote      bool     `json:"remote"`
		URL         string   `json:"url"`
		Tags        []string `json:"tags"`
		Location    string   `json:"location"`
		CreatedAt   int64    `json:"created_at"`
	} `json:"data"`
}

// Arbeitnow has no search endpoint: the whole board is fetched and filtered locally.
type Arbeitnow struct {
	*fetcher
}

func NewArbeitnow(f *fetcher) *Arbeitnow {
	return &Arbeitnow{fetcher: f}
}

func (a *Arbeitnow) Name() string {
	return "Arbeitnow"
}

func (a *Arbeitnow) Capabilities() Capabilities {
	return Capabilities{}
}

func (a *Arbeitnow) Scrape(ctx context.Context, query Query) ([]models.RawJob, error) {
	body, err := a.get(ctx, arbeitnowURL)
	if err != nil {
		return nil, err
	}

	var response arbeitnowResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %w", err)
	}

	keyword := strings.ToLower(query.Keyword)
	var jobs []models.RawJob
	for _, item := range response.Data {
		searchText := strings.ToLower(item.Title + " " + item.Description + " " + strings.Join(item.Tags, " "))
		if !strings.Contains(searchText, keyword) {
			continue
		}

		job := models.RawJob{
			Title:            item.Title,
			Link:             item.URL,
			Description:      item.Description,
			Company:          models.Company{Name: item.CompanyName},
			Source:           a.Name(),
			OriginalLanguage: "en",
			LocationRaw:      item.Location,
			Remote:           &item.Remote,
			ExternalID:       item.Slug,
		}
		if item.CreatedAt > 0 {
			created := time.Unix(item.CreatedAt, 0).UTC()
			job.PublishedAt = models.Date{Year: created.Year(), Month: created.Month(), Day: created.Day()}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
