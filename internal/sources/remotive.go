package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
)

const remotiveURL = "https://remotive.com/api/remote-jobs"

type remotiveResponse struct {
	Jobs []struct {
		ID                        int    `json:"id"`
		URL                       string `json:"url"`
		Title                     string `json:"title"`
		CompanyName               string `json:"company_name"`
		CompanyLogo               string `json:"company_logo"`
		Description               string `json:"description"`
		PublicationDate           string `json:"publication_date"`
		CandidateRequiredLocation string `json:"candidate_required_location"`
	} `json:"jobs"`
}

// Remotive lists remote jobs only, published in English whatever language is requested.
type Remotive struct {
	*fetcher
}

func NewRemotive(f *fetcher) *Remotive {
	return &Remotive{fetcher: f}
}

func (r *Remotive) Name() string {
	return "Remotive"
}

func (r *Remotive) Capabilities() Capabilities {
	return Capabilities{}
}

func (r *Remotive) Scrape(ctx context.Context, query Query) ([]models.RawJob, error) {
	params := url.Values{}
	params.Set("search", query.Keyword)
	params.Set("limit", "50")

	body, err := r.get(ctx, remotiveURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var response remotiveResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %w", err)
	}

	remote := true
	jobs := make([]models.RawJob, 0, len(response.Jobs))
	for _, item := range response.Jobs {
		jobs = append(jobs, models.RawJob{
			Title:            item.Title,
			Link:             item.URL,
			Description:      item.Description,
			Company:          models.Company{Name: item.CompanyName, Logo: item.CompanyLogo},
			Source:           r.Name(),
			OriginalLanguage: "en",
			PublishedAt:      nilIfEmpty(item.PublicationDate),
			LocationRaw:      item.CandidateRequiredLocation,
			Remote:           &remote,
			ExternalID:       fmt.Sprint(item.ID),
		})
	}
	return jobs, nil
}

func nilIfEmpty(value string) models.RawDate {
	if value == "" {
		return nil
	}
	return value
}
