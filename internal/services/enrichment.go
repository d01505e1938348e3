package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/maxaizer/jobhub-importer/internal/logger"
	"github.com/maxaizer/jobhub-importer/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

var ErrNotCategorized = errors.New("job was not categorized")

type companyRepository interface {
	Upsert(ctx context.Context, company models.Company) (uint, error)
}

type seniorityRepository interface {
	Upsert(ctx context.Context, level string) (uint, error)
}

type geocoder interface {
	Geocode(ctx context.Context, address string) (*models.GeoLocation, error)
}

// Enricher folds the AI categorization and the geocoder answer into a job.
// Adapter-supplied values win over AI estimates.
type Enricher struct {
	companies   companyRepository
	seniorities seniorityRepository
	geocoder    geocoder
}

// NewEnricher accepts a nil geocoder, jobs then keep no coordinates.
func NewEnricher(companies companyRepository, seniorities seniorityRepository, geocoder geocoder) *Enricher {
	return &Enricher{companies: companies, seniorities: seniorities, geocoder: geocoder}
}

// Merge returns ErrNotCategorized when raw is nil. Any other error comes from persistence.
func (e *Enricher) Merge(ctx context.Context, job *models.JobPosting, raw *models.RawCategorization) error {
	if raw == nil {
		return ErrNotCategorized
	}
	categorization := NormalizeCategorization(raw)

	adapterSalaryMin, adapterSalaryMax := job.SalaryMin, job.SalaryMax
	applyCategorization(job, categorization)
	if adapterSalaryMin != nil {
		job.SalaryMin = adapterSalaryMin
	}
	if adapterSalaryMax != nil {
		job.SalaryMax = adapterSalaryMax
	}

	e.geocode(ctx, job)

	if strings.TrimSpace(job.Company.Name) != "" {
		id, err := e.companies.Upsert(ctx, job.Company)
		if err != nil {
			return fmt.Errorf("error upserting company %v: %w", job.Company.Name, err)
		}
		job.CompanyID = id
	}

	if job.Seniority != "" {
		id, err := e.seniorities.Upsert(ctx, string(job.Seniority))
		if err != nil {
			return fmt.Errorf("error upserting seniority %v: %w", job.Seniority, err)
		}
		job.SeniorityID = id
	}

	return nil
}

func applyCategorization(job *models.JobPosting, c models.Categorization) {
	job.Language = c.Language
	job.Skills = c.Skills
	job.Requirements = c.Requirements
	job.Benefits = c.Benefits
	job.SalaryMin = c.SalaryMin
	job.SalaryMax = c.SalaryMax
	job.Seniority = c.Seniority
	job.EmploymentType = c.EmploymentType
	job.FormattedAddress = c.FormattedAddress
	job.City = c.City
	job.Country = c.Country
	if !job.RemoteFromSource() {
		job.Remote = c.Remote
	}
}

// geocode never fails the merge, a job without coordinates is still a valid job.
func (e *Enricher) geocode(ctx context.Context, job *models.JobPosting) {
	address := geocodingAddress(job)
	if address == "" || e.geocoder == nil {
		return
	}

	start := time.Now()
	location, err := e.geocoder.Geocode(ctx, address)
	metrics.StepDuration.WithLabelValues(metrics.StepGeocoding).Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeGeoApi).
			Errorf("failed to geocode %q for %v: %v", address, job.Link, err)
		return
	}
	if location == nil {
		log.Debugf("no geocoding result for %q", address)
		return
	}

	job.LocationGeo = models.NewGeoPoint(location.Lat, location.Lng)
	job.VerifiedAddress = location.FormattedAddress
	if job.Location == "" {
		job.Location = location.FormattedAddress
	}
}

func geocodingAddress(job *models.JobPosting) string {
	if job.FormattedAddress != "" {
		return job.FormattedAddress
	}
	if job.City == "" {
		return ""
	}
	if job.Country == "" {
		return job.City
	}
	return job.City + ", " + job.Country
}

// NormalizeCategorization absorbs the schema drift of AI answers: list-valued cities,
// stringly typed salaries and the legacy is_remote flag.
func NormalizeCategorization(raw *models.RawCategorization) models.Categorization {
	remote := false
	if raw.Remote != nil {
		remote = *raw.Remote
	}
	if raw.IsRemote != nil {
		remote = *raw.IsRemote
	}

	return models.Categorization{
		Language:         normalizeLanguage(raw.Language),
		Skills:           normalizeSkills(raw.TechnicalSkills),
		Requirements:     trimAll(raw.Requirements),
		Benefits:         trimAll(raw.Benefits),
		SalaryMin:        toSalary(raw.SalaryMin),
		SalaryMax:        toSalary(raw.SalaryMax),
		Seniority:        models.ToSeniority(raw.Seniority),
		EmploymentType:   strings.TrimSpace(raw.EmploymentType),
		Remote:           remote,
		FormattedAddress: strings.TrimSpace(lo.FromPtr(raw.FormattedAddress)),
		City:             normalizeCity(raw.City),
		Country:          strings.TrimSpace(lo.FromPtr(raw.Country)),
	}
}

func normalizeCity(city any) string {
	switch value := city.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case []any:
		if len(value) == 0 || value[0] == nil {
			return ""
		}
		return strings.TrimSpace(cast.ToString(value[0]))
	case []string:
		if len(value) == 0 {
			return ""
		}
		return strings.TrimSpace(value[0])
	default:
		return strings.TrimSpace(cast.ToString(value))
	}
}

// toSalary reads strings as base 10: cast would take "040000" for an octal literal.
func toSalary(value any) *int {
	switch v := value.(type) {
	case nil, bool:
		return nil
	case string:
		return parseSalary(v)
	}
	salary, err := cast.ToIntE(value)
	if err != nil {
		return nil
	}
	return &salary
}

func parseSalary(value string) *int {
	value = strings.TrimSpace(value)
	if salary, err := strconv.Atoi(value); err == nil {
		return &salary
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil
	}
	salary := int(amount)
	return &salary
}

func normalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if len(language) != 2 {
		return ""
	}
	return language
}

func normalizeSkills(skills []string) []string {
	return lo.Uniq(lo.FilterMap(skills, func(skill string, _ int) (string, bool) {
		skill = strings.ToLower(strings.TrimSpace(skill))
		return skill, skill != ""
	}))
}

func trimAll(items []string) []string {
	return lo.FilterMap(items, func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}
