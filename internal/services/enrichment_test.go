package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type enricherMocks struct {
	companies   *mockCompanies
	seniorities *mockSeniorities
	geocoder    *mockGeocoder
}

func newTestEnricher() (*Enricher, *enricherMocks) {
	m := &enricherMocks{companies: &mockCompanies{}, seniorities: &mockSeniorities{}, geocoder: &mockGeocoder{}}
	return NewEnricher(m.companies, m.seniorities, m.geocoder), m
}

func Test_Enricher_Merge_AdapterSalaryWins(t *testing.T) {
	enricher, _ := newTestEnricher()
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1", SalaryMin: lo.ToPtr(40000)})

	err := enricher.Merge(context.Background(), job, &models.RawCategorization{SalaryMin: 35000.0, SalaryMax: "50000"})

	require.NoError(t, err)
	assert.Equal(t, 40000, *job.SalaryMin)
	assert.Equal(t, 50000, *job.SalaryMax)
}

func Test_Enricher_Merge_CityListTakesFirst(t *testing.T) {
	enricher, m := newTestEnricher()
	m.geocoder.On("Geocode", mock.Anything, "Rome").Return(nil, nil)
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1"})

	err := enricher.Merge(context.Background(), job, &models.RawCategorization{City: []any{"Rome", "Turin"}})

	require.NoError(t, err)
	assert.Equal(t, "Rome", job.City)
	assert.Nil(t, job.LocationGeo)
}

func Test_NormalizeCategorization_SchemaDrift(t *testing.T) {
	cases := []struct {
		name     string
		raw      models.RawCategorization
		expected models.Categorization
	}{
		{
			name:     "empty city list",
			raw:      models.RawCategorization{City: []any{}},
			expected: models.Categorization{},
		},
		{
			name:     "numeric city",
			raw:      models.RawCategorization{City: 42.0},
			expected: models.Categorization{City: "42"},
		},
		{
			name:     "legacy is_remote overrides remote",
			raw:      models.RawCategorization{Remote: lo.ToPtr(false), IsRemote: lo.ToPtr(true)},
			expected: models.Categorization{Remote: true},
		},
		{
			name:     "string salaries are read as base 10",
			raw:      models.RawCategorization{SalaryMin: "040000", SalaryMax: " 52000.0 "},
			expected: models.Categorization{SalaryMin: lo.ToPtr(40000), SalaryMax: lo.ToPtr(52000)},
		},
		{
			name:     "uncoercible salaries become nil",
			raw:      models.RawCategorization{SalaryMin: "competitive", SalaryMax: true},
			expected: models.Categorization{},
		},
		{
			name: "skills lowercased and deduplicated",
			raw: models.RawCategorization{
				TechnicalSkills: []string{"Go", " go ", "PostgreSQL", ""},
				Language:        "EN",
				Seniority:       "senior",
				Country:         lo.ToPtr(" Italy "),
			},
			expected: models.Categorization{
				Skills:    []string{"go", "postgresql"},
				Language:  "en",
				Seniority: models.SenioritySenior,
				Country:   "Italy",
			},
		},
		{
			name:     "language that is not a two letter code is dropped",
			raw:      models.RawCategorization{Language: "English"},
			expected: models.Categorization{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual := NormalizeCategorization(&c.raw)
			assert.Equal(t, c.expected.City, actual.City)
			assert.Equal(t, c.expected.Remote, actual.Remote)
			assert.Equal(t, c.expected.SalaryMin, actual.SalaryMin)
			assert.Equal(t, c.expected.SalaryMax, actual.SalaryMax)
			assert.Equal(t, c.expected.Language, actual.Language)
			assert.Equal(t, c.expected.Seniority, actual.Seniority)
			assert.Equal(t, c.expected.Country, actual.Country)
			if c.expected.Skills != nil {
				assert.Equal(t, c.expected.Skills, actual.Skills)
			}
		})
	}
}

func Test_Enricher_Merge_RemoteFromAdapterWins(t *testing.T) {
	enricher, _ := newTestEnricher()

	fromAdapter := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1", Remote: lo.ToPtr(false)})
	require.NoError(t, enricher.Merge(context.Background(), fromAdapter, &models.RawCategorization{Remote: lo.ToPtr(true)}))
	assert.False(t, fromAdapter.Remote)

	fromAI := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/2"})
	require.NoError(t, enricher.Merge(context.Background(), fromAI, &models.RawCategorization{IsRemote: lo.ToPtr(true)}))
	assert.True(t, fromAI.Remote)
}

func Test_Enricher_Merge_GeocodesFormattedAddressFirst(t *testing.T) {
	enricher, m := newTestEnricher()
	m.geocoder.On("Geocode", mock.Anything, "Via Roma 1, Turin").
		Return(&models.GeoLocation{Lat: 45.07, Lng: 7.68, FormattedAddress: "Via Roma, 1, 10121 Torino TO, Italy"}, nil)
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1"})

	err := enricher.Merge(context.Background(), job, &models.RawCategorization{
		FormattedAddress: lo.ToPtr("Via Roma 1, Turin"),
		City:             "Turin",
		Country:          lo.ToPtr("Italy"),
	})

	require.NoError(t, err)
	require.NotNil(t, job.LocationGeo)
	assert.Equal(t, "Point", job.LocationGeo.Type)
	assert.Equal(t, [2]float64{7.68, 45.07}, job.LocationGeo.Coordinates)
	assert.Equal(t, "Via Roma, 1, 10121 Torino TO, Italy", job.VerifiedAddress)
	assert.Equal(t, "Via Roma, 1, 10121 Torino TO, Italy", job.Location)
}

func Test_Enricher_Merge_SynthesizesAddressAndKeepsExistingLocation(t *testing.T) {
	enricher, m := newTestEnricher()
	m.geocoder.On("Geocode", mock.Anything, "Rome, Italy").
		Return(&models.GeoLocation{Lat: 41.9, Lng: 12.5, FormattedAddress: "Rome, Italy"}, nil)
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1", LocationRaw: "Lazio"})

	err := enricher.Merge(context.Background(), job, &models.RawCategorization{City: "Rome", Country: lo.ToPtr("Italy")})

	require.NoError(t, err)
	require.NotNil(t, job.LocationGeo)
	assert.Equal(t, "Lazio", job.Location)
	assert.Equal(t, "Rome, Italy", job.VerifiedAddress)
	m.geocoder.AssertExpectations(t)
}

func Test_Enricher_Merge_GeocoderFailure_IsNotFatal(t *testing.T) {
	enricher, m := newTestEnricher()
	m.geocoder.On("Geocode", mock.Anything, "Milan").Return(nil, errors.New("quota exceeded"))
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1"})

	err := enricher.Merge(context.Background(), job, &models.RawCategorization{City: "Milan"})

	assert.NoError(t, err)
	assert.Nil(t, job.LocationGeo)
	assert.Equal(t, "Milan", job.City)
}

func Test_Enricher_Merge_WithoutGeocoder_SkipsGeocoding(t *testing.T) {
	enricher := NewEnricher(&mockCompanies{}, &mockSeniorities{}, nil)
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1"})

	assert.NoError(t, enricher.Merge(context.Background(), job, &models.RawCategorization{City: "Milan"}))
	assert.Nil(t, job.LocationGeo)
}

func Test_Enricher_Merge_AttachesCompanyAndSeniority(t *testing.T) {
	enricher, m := newTestEnricher()
	company := models.Company{Name: "Acme", Logo: "https://acme.io/logo.png"}
	m.companies.On("Upsert", mock.Anything, company).Return(uint(7), nil).Once()
	m.seniorities.On("Upsert", mock.Anything, "Senior").Return(uint(3), nil).Once()
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1", Company: company})

	err := enricher.Merge(context.Background(), job, &models.RawCategorization{Seniority: "Senior"})

	require.NoError(t, err)
	assert.Equal(t, uint(7), job.CompanyID)
	assert.Equal(t, uint(3), job.SeniorityID)
	m.companies.AssertExpectations(t)
	m.seniorities.AssertExpectations(t)
}

func Test_Enricher_Merge_NoCompanyOrSeniority_SkipsUpserts(t *testing.T) {
	enricher, m := newTestEnricher()
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1"})

	require.NoError(t, enricher.Merge(context.Background(), job, &models.RawCategorization{}))

	m.companies.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	m.seniorities.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	assert.Zero(t, job.CompanyID)
}

func Test_Enricher_Merge_NilResult_IsNotCategorized(t *testing.T) {
	enricher, m := newTestEnricher()
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1", Company: models.Company{Name: "Acme"}})

	err := enricher.Merge(context.Background(), job, nil)

	assert.ErrorIs(t, err, ErrNotCategorized)
	assert.Nil(t, job.Skills)
	m.companies.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func Test_Enricher_Merge_PersistenceErrorIsWrapped(t *testing.T) {
	enricher, m := newTestEnricher()
	m.companies.On("Upsert", mock.Anything, mock.Anything).Return(uint(0), sql.ErrConnDone)
	job := models.NewJobPosting(models.RawJob{Title: "Dev", Link: "http://x/1", Company: models.Company{Name: "Acme"}})

	err := enricher.Merge(context.Background(), job, &models.RawCategorization{})

	assert.ErrorIs(t, err, sql.ErrConnDone)
}
