package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/jobhub-importer/internal/config"
	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/maxaizer/jobhub-importer/internal/entities"
	"github.com/maxaizer/jobhub-importer/internal/events"
	"github.com/maxaizer/jobhub-importer/internal/extractor"
	"github.com/maxaizer/jobhub-importer/internal/logger"
	"github.com/maxaizer/jobhub-importer/internal/metrics"
	"github.com/maxaizer/jobhub-importer/internal/repositories"
	"github.com/maxaizer/jobhub-importer/internal/sources"
	log "github.com/sirupsen/logrus"
)

type descriptionExtractor interface {
	FetchAndExtract(ctx context.Context, url string) (description string, logoURL string)
}

type jobCategorizer interface {
	Categorize(ctx context.Context, title, description string) (*models.RawCategorization, error)
}

type jobRepository interface {
	ExistsByLink(ctx context.Context, link string) (bool, error)
	Insert(ctx context.Context, job entities.Job) (id uint, inserted bool, err error)
}

type Dependencies struct {
	Bus         EventBus.Bus
	Extractor   descriptionExtractor
	Categorizer jobCategorizer
	Geocoder    geocoder
	Jobs        jobRepository
	Companies   companyRepository
	Seniorities seniorityRepository
}

// Orchestrator drives every source through the per-job pipeline, one job at a time:
// link check, relevance, freshness, description expansion, dedup, categorization,
// enrichment and insert.
type Orchestrator struct {
	cfg          config.PipelineConfig
	sources      []sources.Source
	bus          EventBus.Bus
	dates        *DateNormalizer
	extractor    descriptionExtractor
	deduplicator *Deduplicator
	categorizer  jobCategorizer
	enricher     *Enricher
	jobs         jobRepository
	validate     *validator.Validate
	sleep        func(ctx context.Context, d time.Duration)
}

func NewOrchestrator(cfg config.PipelineConfig, srcs []sources.Source, deps Dependencies) *Orchestrator {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 100
	}
	if cfg.DescriptionMinLength <= 0 {
		cfg.DescriptionMinLength = 500
	}

	return &Orchestrator{
		cfg:          cfg,
		sources:      srcs,
		bus:          deps.Bus,
		dates:        NewDateNormalizer(),
		extractor:    deps.Extractor,
		deduplicator: NewDeduplicator(deps.Jobs),
		categorizer:  deps.Categorizer,
		enricher:     NewEnricher(deps.Companies, deps.Seniorities, deps.Geocoder),
		jobs:         deps.Jobs,
		validate:     validator.New(),
		sleep:        sleepContext,
	}
}

// SetClock replaces the clock used by the freshness gate.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.dates.SetClock(now)
}

// Run executes one full import. Job level failures only drop the job; the returned
// error is reserved for a lost persistence connection or a cancelled context.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	start := time.Now()
	stats := NewRunStats()
	log.Infof("starting import run for languages %v", o.cfg.Languages)

	defer func() {
		metrics.RunDuration.Observe(time.Since(start).Seconds())
		log.Infof("import run ended after %v, %v jobs imported", time.Since(start), stats.GrandTotal())
	}()

	for _, lang := range o.cfg.Languages {
		stats.StartLanguage(lang)
		log.Infof("processing language %v", lang)

		for _, source := range o.sources {
			if o.quotaReached(stats, lang) {
				log.Infof("reached limit for %v, skipping remaining sources", lang)
				break
			}

			var err error
			if source.Capabilities().Breadth {
				err = o.runBreadth(ctx, source, lang, stats)
			} else {
				err = o.runKeywords(ctx, source, lang, stats)
			}
			if err != nil {
				return stats, err
			}
		}
	}

	return stats, nil
}

func (o *Orchestrator) quotaReached(stats *RunStats, lang string) bool {
	return stats.Total(lang) >= o.cfg.LimitPerLanguage
}

func (o *Orchestrator) runKeywords(ctx context.Context, source sources.Source, lang string, stats *RunStats) error {
	for _, keyword := range o.cfg.Keywords {
		if o.quotaReached(stats, lang) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Infof("scraping %v for %q in %v", source.Name(), keyword, lang)
		jobs, err := source.Scrape(ctx, sources.Query{Keyword: keyword, Lang: lang})
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSource).
				Errorf("error scraping %v for %q in %v: %v", source.Name(), keyword, lang, err)
			continue
		}
		log.Infof("found %v potential jobs", len(jobs))

		if _, err := o.processJobs(ctx, source, lang, jobs, stats); err != nil {
			return err
		}
	}
	return nil
}

// runBreadth pages a category until the quota is met or a page comes back empty.
// Pages that import nothing are tolerated up to UnproductivePageCap: an empty yield
// can mean duplicates, stale jobs or exhaustion, which are indistinguishable here.
// MaxPages bounds the loop regardless.
func (o *Orchestrator) runBreadth(ctx context.Context, source sources.Source, lang string, stats *RunStats) error {
	category := source.Capabilities().Category

	for page := 1; page <= o.cfg.MaxPages; page++ {
		if o.quotaReached(stats, lang) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Infof("scraping %v page %v for category %q in %v", source.Name(), page, category, lang)
		jobs, err := source.Scrape(ctx, sources.Query{Lang: lang, Category: category, Page: page})
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSource).
				Errorf("error in breadth scraping of %v page %v: %v", source.Name(), page, err)
			return nil
		}
		if len(jobs) == 0 {
			log.Infof("no more jobs on page %v of %v, stopping", page, source.Name())
			return nil
		}
		log.Infof("found %v potential jobs", len(jobs))

		imported, err := o.processJobs(ctx, source, lang, jobs, stats)
		if err != nil {
			return err
		}
		if imported == 0 {
			log.Infof("no new jobs from page %v of %v", page, source.Name())
			if page > o.cfg.UnproductivePageCap {
				return nil
			}
		}

		o.sleep(ctx, o.cfg.PageDelay)
	}

	log.Warnf("stopped %v after %v pages", source.Name(), o.cfg.MaxPages)
	return nil
}

func (o *Orchestrator) processJobs(ctx context.Context, source sources.Source, lang string,
	rawJobs []models.RawJob, stats *RunStats) (imported int, err error) {

	for _, raw := range rawJobs {
		if o.quotaReached(stats, lang) {
			break
		}
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		ok, err := o.processJob(ctx, source, lang, raw)
		if err != nil {
			return imported, err
		}
		if ok {
			imported++
			stats.RecordImport(lang, source.Name())
		}
	}
	return imported, nil
}

// processJob returns true when the job was persisted. A non-nil error aborts the run.
func (o *Orchestrator) processJob(ctx context.Context, source sources.Source, lang string, raw models.RawJob) (bool, error) {

	if err := o.validate.Struct(raw); err != nil {
		log.Warnf("skipping job without a valid link: %q", raw.Title)
		o.dropped(raw.Link, source, events.DropMissingLink)
		return false, nil
	}

	job := models.NewJobPosting(raw)

	if !IsRelevant(job.Title, o.cfg.Keywords) {
		log.Debugf("skipping irrelevant job: %q", job.Title)
		o.dropped(job.Link, source, events.DropIrrelevant)
		return false, nil
	}

	if !o.dates.IsFresh(job.RawPublishedAt, o.cfg.Days) {
		log.Debugf("skipping job (too old): %q - %v", job.Title, job.RawPublishedAt)
		o.dropped(job.Link, source, events.DropStale)
		return false, nil
	}
	publishedAt, ok := o.dates.Normalize(job.RawPublishedAt)
	if !ok {
		publishedAt = o.dates.Now()
	}
	job.PublishedAt = &publishedAt

	if !o.expandDescription(ctx, job, source) {
		o.dropped(job.Link, source, events.DropDescriptionFailed)
		return false, nil
	}
	if !job.DescriptionIsMD && job.Description != "" {
		if markdown, converted, err := extractor.HTMLToMarkdown(job.Description); err != nil {
			log.Warnf("could not convert description of %v to markdown: %v", job.Link, err)
		} else if converted {
			job.Description = markdown
		}
	}

	duplicate, err := o.deduplicator.IsDuplicate(ctx, job)
	if err != nil {
		return false, o.persistenceFailure(job, source, "checking duplicate", err)
	}
	if duplicate {
		log.Debugf("skipping job (duplicate): %q", job.Title)
		o.dropped(job.Link, source, events.DropDuplicate)
		return false, nil
	}

	log.Infof("processing job: %q", job.Title)
	start := time.Now()
	categorization, err := o.categorizer.Categorize(ctx, job.Title, job.Description)
	metrics.StepDuration.WithLabelValues(metrics.StepCategorization).Observe(time.Since(start).Seconds())
	defer o.sleep(ctx, o.cfg.AIDelay)

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Warnf("AI categorization failed for %q: %v", job.Title, err)
		categorization = nil
	}
	if err := o.enricher.Merge(ctx, job, categorization); err != nil {
		if errors.Is(err, ErrNotCategorized) {
			log.Warnf("AI categorization failed: title=%q", job.Title)
			o.dropped(job.Link, source, events.DropNotCategorized)
			return false, nil
		}
		return false, o.persistenceFailure(job, source, "enriching", err)
	}

	start = time.Now()
	id, inserted, err := o.jobs.Insert(ctx, entities.NewJob(job))
	metrics.StepDuration.WithLabelValues(metrics.StepPersist).Observe(time.Since(start).Seconds())
	if err != nil {
		return false, o.persistenceFailure(job, source, "inserting", err)
	}
	if !inserted {
		log.Infof("SKIPPED (duplicate): title=%q source=%v", job.Title, job.Source)
		o.dropped(job.Link, source, events.DropDuplicate)
		return false, nil
	}

	log.Infof("IMPORTED: id=%v title=%q source=%v", id, job.Title, job.Source)
	o.publish(events.JobImportedTopic, events.JobImported{
		ID: id, Link: job.Link, Title: job.Title, Source: source.Name(), Language: lang,
	})
	return true, nil
}

// expandDescription replaces a short description with the one extracted from the job page.
// It returns false only when a strict source loses the job.
func (o *Orchestrator) expandDescription(ctx context.Context, job *models.JobPosting, source sources.Source) bool {
	if utf8.RuneCountInString(job.Description) >= o.cfg.DescriptionMinLength {
		return true
	}

	log.Infof("fetching full description for: %q", job.Title)
	start := time.Now()
	description, logoURL := o.extractor.FetchAndExtract(ctx, job.Link)
	metrics.StepDuration.WithLabelValues(metrics.StepFetchDescription).Observe(time.Since(start).Seconds())

	if description == "" {
		if source.Capabilities().StrictDescription {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeFetch).
				Errorf("ERROR IMPORTING %v JOB: %q (%v) - description could not be fetched", source.Name(), job.Title, job.Link)
			return false
		}
		log.Warnf("could not fetch full description of %v, keeping snippet", job.Link)
		return true
	}

	job.Description = description
	job.DescriptionIsMD = true
	if logoURL != "" && job.Company.Logo == "" {
		job.Company.Logo = logoURL
		log.Infof("updated company logo from description: %v", logoURL)
	}
	return true
}

// persistenceFailure aborts the run on a lost connection and drops the job otherwise.
func (o *Orchestrator) persistenceFailure(job *models.JobPosting, source sources.Source, action string, err error) error {
	if repositories.IsConnectionLost(err) {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("persistence connection lost while %v %v: %v", action, job.Link, err)
		return err
	}
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
		Errorf("error %v %v: %v", action, job.Link, err)
	o.dropped(job.Link, source, events.DropPersistFailed)
	return nil
}

func (o *Orchestrator) dropped(link string, source sources.Source, reason events.DropReason) {
	o.publish(events.JobDroppedTopic, events.JobDropped{Link: link, Source: source.Name(), Reason: reason})
}

func (o *Orchestrator) publish(topic string, event any) {
	if o.bus != nil {
		o.bus.Publish(topic, event)
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
