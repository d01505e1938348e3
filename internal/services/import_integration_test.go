package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/maxaizer/jobhub-importer/internal/entities"
	"github.com/maxaizer/jobhub-importer/internal/events"
	"github.com/maxaizer/jobhub-importer/internal/repositories"
	"github.com/maxaizer/jobhub-importer/internal/sources"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func upDatabase(t *testing.T) *repositories.DbContext {
	t.Helper()
	dbCtx, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "testdatabase.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func Test_Import_RepeatedRun_DuplicatesAreIgnored(t *testing.T) {
	dbCtx := upDatabase(t)

	withCompany := freshJob("http://x/1", "Senior Go Developer")
	withCompany.Company = models.Company{Name: "Acme", Logo: "https://acme.io/logo.png"}
	withCompany.SalaryMin = lo.ToPtr(40000)
	sameCompany := freshJob("http://x/2", "Go Developer")
	sameCompany.Company = models.Company{Name: " acme "}

	source := newFakeSource("Remotive", sources.Capabilities{})
	source.On("Scrape", keywordQuery("developer")).Return([]models.RawJob{withCompany, sameCompany}, nil)

	categorizer := &mockCategorizer{}
	categorizer.On("Categorize", mock.Anything, mock.Anything, mock.Anything).Return(&models.RawCategorization{
		Language:        "en",
		TechnicalSkills: []string{"Go", "go", "Kubernetes"},
		SalaryMin:       "35000",
		Seniority:       "Senior",
	}, nil)

	imported := 0
	bus := EventBus.New()
	require.NoError(t, bus.Subscribe(events.JobImportedTopic, func(events.JobImported) {
		imported++
	}))

	jobs := repositories.NewJobsRepository(dbCtx.DB)
	o := NewOrchestrator(testPipelineConfig(), []sources.Source{source}, Dependencies{
		Bus:         bus,
		Extractor:   &mockExtractor{},
		Categorizer: categorizer,
		Jobs:        jobs,
		Companies:   repositories.NewCompaniesRepository(dbCtx.DB),
		Seniorities: repositories.NewCachedSeniorities(repositories.NewSenioritiesRepository(dbCtx.DB)),
	})
	o.SetClock(func() time.Time { return testNow })
	o.sleep = func(context.Context, time.Duration) {}

	stats, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total("en"))

	stats, err = o.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total("en"))
	categorizer.AssertNumberOfCalls(t, "Categorize", 2)
	assert.Equal(t, 2, imported)

	var stored []entities.Job
	require.NoError(t, dbCtx.DB.Order("id").Find(&stored).Error)
	require.Len(t, stored, 2)

	assert.Equal(t, []string{"go", "kubernetes"}, stored[0].Skills)
	assert.Equal(t, 40000, *stored[0].SalaryMin)
	assert.Equal(t, 35000, *stored[1].SalaryMin)
	assert.Equal(t, "Senior", stored[0].Seniority)
	require.NotNil(t, stored[0].CompanyID)
	require.NotNil(t, stored[1].CompanyID)
	assert.Equal(t, *stored[0].CompanyID, *stored[1].CompanyID)
	assert.Equal(t, *stored[0].SeniorityID, *stored[1].SeniorityID)
	assert.True(t, stored[0].PublishedAt.Equal(testNow.Add(-24*time.Hour)))
}
