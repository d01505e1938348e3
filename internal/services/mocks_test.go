package services

import (
	"context"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/maxaizer/jobhub-importer/internal/entities"
	"github.com/maxaizer/jobhub-importer/internal/sources"
	"github.com/stretchr/testify/mock"
)

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) GenerateResponse(ctx context.Context, request string) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

type mockCompanies struct {
	mock.Mock
}

func (m *mockCompanies) Upsert(ctx context.Context, company models.Company) (uint, error) {
	args := m.Called(ctx, company)
	return args.Get(0).(uint), args.Error(1)
}

type mockSeniorities struct {
	mock.Mock
}

func (m *mockSeniorities) Upsert(ctx context.Context, level string) (uint, error) {
	args := m.Called(ctx, level)
	return args.Get(0).(uint), args.Error(1)
}

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*models.GeoLocation, error) {
	args := m.Called(ctx, address)
	location, _ := args.Get(0).(*models.GeoLocation)
	return location, args.Error(1)
}

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) ExistsByLink(ctx context.Context, link string) (bool, error) {
	args := m.Called(ctx, link)
	return args.Bool(0), args.Error(1)
}

func (m *mockJobs) Insert(ctx context.Context, job entities.Job) (uint, bool, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) FetchAndExtract(ctx context.Context, url string) (string, string) {
	args := m.Called(ctx, url)
	return args.String(0), args.String(1)
}

type mockCategorizer struct {
	mock.Mock
}

func (m *mockCategorizer) Categorize(ctx context.Context, title, description string) (*models.RawCategorization, error) {
	args := m.Called(ctx, title, description)
	result, _ := args.Get(0).(*models.RawCategorization)
	return result, args.Error(1)
}

type fakeSource struct {
	mock.Mock
	name string
	caps sources.Capabilities
}

func newFakeSource(name string, caps sources.Capabilities) *fakeSource {
	return &fakeSource{name: name, caps: caps}
}

func (f *fakeSource) Name() string {
	return f.name
}

func (f *fakeSource) Capabilities() sources.Capabilities {
	return f.caps
}

func (f *fakeSource) Scrape(ctx context.Context, query sources.Query) ([]models.RawJob, error) {
	args := f.Called(query)
	jobs, _ := args.Get(0).([]models.RawJob)
	return jobs, args.Error(1)
}
