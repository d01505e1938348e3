package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

const (
	adzunaBaseURL        = "https://api.adzuna.com/v1/api/jobs"
	adzunaCategory       = "it-jobs"
	adzunaResultsPerPage = 50
)

var adzunaCountries = map[string]string{
	"en": "gb",
	"it": "it",
	"es": "es",
	"fr": "fr",
	"de": "de",
}

type adzunaResponse struct {
	Results []struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		RedirectURL string   `json:"redirect_url"`
		Created     string   `json:"created"`
		SalaryMin   *float64 `json:"salary_min"`
		SalaryMax   *float64 `json:"salary_max"`
		Company     struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
	} `json:"results"`
}

// Adzuna is a breadth source: it is paged through the IT category instead of searched per keyword.
type Adzuna struct {
	*fetcher
	appID  string
	appKey string
}

func NewAdzuna(f *fetcher, appID, appKey string) *Adzuna {
	return &Adzuna{fetcher: f, appID: appID, appKey: appKey}
}

func (a *Adzuna) Name() string {
	return "Adzuna"
}

func (a *Adzuna) Capabilities() Capabilities {
	return Capabilities{Breadth: true, Category: adzunaCategory}
}

func (a *Adzuna) Scrape(ctx context.Context, query Query) ([]models.RawJob, error) {
	if a.appID == "" || a.appKey == "" {
		log.WithError(ErrMissingCredentials).Warn("skipping Adzuna")
		return nil, nil
	}

	country, ok := adzunaCountries[query.Lang]
	if !ok {
		country = "it"
	}
	page := query.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", fmt.Sprint(adzunaResultsPerPage))
	params.Set("content-type", "application/json")
	if query.Keyword != "" {
		params.Set("what", query.Keyword)
	}
	if query.Category != "" {
		params.Set("category", query.Category)
	}

	body, err := a.get(ctx, fmt.Sprintf("%s/%s/search/%d?%s", adzunaBaseURL, country, page, params.Encode()))
	if err != nil {
		return nil, err
	}

	var response adzunaResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %w", err)
	}

	jobs := make([]models.RawJob, 0, len(response.Results))
	for _, item := range response.Results {
		job := models.RawJob{
			Title:            strings.TrimSpace(item.Title),
			Link:             item.RedirectURL,
			Description:      item.Description,
			Company:          models.Company{Name: item.Company.DisplayName},
			Source:           a.Name(),
			OriginalLanguage: query.Lang,
			LocationRaw:      item.Location.DisplayName,
			ExternalID:       item.ID,
			SalaryMin:        roundSalary(item.SalaryMin),
			SalaryMax:        roundSalary(item.SalaryMax),
		}
		if item.Created != "" {
			job.PublishedAt = item.Created
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func roundSalary(value *float64) *int {
	if value == nil {
		return nil
	}
	salary := int(*value + 0.5)
	return &salary
}
