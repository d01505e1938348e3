package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobhub-importer/internal/clients/gemini"
	"github.com/maxaizer/jobhub-importer/internal/clients/geocoding"
	"github.com/maxaizer/jobhub-importer/internal/clients/telegram"
	"github.com/maxaizer/jobhub-importer/internal/config"
	"github.com/maxaizer/jobhub-importer/internal/events"
	"github.com/maxaizer/jobhub-importer/internal/extractor"
	"github.com/maxaizer/jobhub-importer/internal/logger"
	"github.com/maxaizer/jobhub-importer/internal/metrics"
	"github.com/maxaizer/jobhub-importer/internal/repositories"
	"github.com/maxaizer/jobhub-importer/internal/services"
	"github.com/maxaizer/jobhub-importer/internal/sources"
	log "github.com/sirupsen/logrus"
)

type CLI struct {
	Config    string   `help:"Path to the config file." env:"CONFIG_PATH"`
	Languages []string `help:"Languages to import, comma separated." sep:","`
	Limit     *int     `help:"Maximum number of jobs imported per language."`
	Days      *int     `help:"Only import jobs published within this many days."`
	Schedule  string   `help:"Cron expression. When set the importer keeps running and repeats the import on it."`
	DryReport bool     `help:"Print the summary report without sending it to Telegram."`
}

func (c *CLI) Validate() error {
	if c.Limit != nil && *c.Limit <= 0 {
		return errors.New("--limit must be positive")
	}
	if c.Days != nil && *c.Days < 0 {
		return errors.New("--days must not be negative")
	}
	return nil
}

func (c *CLI) applyTo(cfg *config.PipelineConfig) {
	if len(c.Languages) > 0 {
		cfg.Languages = c.Languages
	}
	if c.Limit != nil {
		cfg.LimitPerLanguage = *c.Limit
	}
	if c.Days != nil {
		cfg.Days = *c.Days
	}
}

func newCategorizer(ctx context.Context, cfg config.AIConfig) (*services.Categorizer, *gemini.Client) {
	aiClient, err := gemini.NewClient(ctx, cfg.Key, gemini.Model(cfg.Model))
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	aiClient.UseJSONResponses(services.CategorizerInstruction)
	aiClient.SetMinuteRateLimit(cfg.MaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.MaxRequestsPerDay)

	return services.NewCategorizer(aiClient), aiClient
}

func newReporter(cfg config.TelegramConfig, dryReport bool) func(stats *services.RunStats, err error) {
	var notifier *telegram.Notifier
	if cfg.Enabled() && !dryReport {
		var err error
		notifier, err = telegram.NewNotifier(cfg.Token, cfg.ChatID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeNotify).
				Errorf("reports won't be sent to telegram: %v", err)
		}
	}

	return func(stats *services.RunStats, err error) {
		if err != nil {
			log.Errorf("import run aborted: %v", err)
		}
		if stats == nil {
			return
		}

		report := stats.String()
		fmt.Println(report)

		if notifier != nil {
			if err := notifier.Notify(report); err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeNotify).
					Errorf("failed to send report: %v", err)
			}
		}
	}
}

func main() {

	var cli CLI
	kong.Parse(&cli,
		kong.Name("jobhub-importer"),
		kong.Description("Imports tech job postings from public job sources."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get(cli.Config)
	cli.applyTo(&cfg.Pipeline)

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	if cfg.Metrics.Enabled {
		metrics.StartMetricsServer(cfg.Metrics.Port)
	}

	dbContext, err := repositories.NewDbContext(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	bus := EventBus.New()
	if err := events.SubscribeMetrics(bus); err != nil {
		log.Fatalf("can't subscribe to events: %v", err)
	}

	srcs, err := sources.NewFromConfig(cfg.Sources, nil)
	if err != nil {
		log.Fatalf("can't create sources: %v", err)
	}

	categorizer, aiClient := newCategorizer(ctx, cfg.AI)
	defer aiClient.Close()

	deps := services.Dependencies{
		Bus:         bus,
		Extractor:   extractor.New(cfg.Pipeline.ExtractTimeout),
		Categorizer: categorizer,
		Jobs:        repositories.NewJobsRepository(dbContext.DB),
		Companies:   repositories.NewCompaniesRepository(dbContext.DB),
		Seniorities: repositories.NewCachedSeniorities(repositories.NewSenioritiesRepository(dbContext.DB)),
	}
	if cfg.Geocoding.Enabled() {
		geocoder := geocoding.NewClient(cfg.Geocoding.APIKey)
		geocoder.SetRateLimit(cfg.Geocoding.MaxRequestsPerSecond)
		deps.Geocoder = geocoding.NewCachedClient(geocoder, cfg.Geocoding.CacheTTL)
	} else {
		log.Warn("geocoding api key is not set, jobs will be saved without coordinates")
	}

	orchestrator := services.NewOrchestrator(cfg.Pipeline, srcs, deps)
	report := newReporter(cfg.Telegram, cli.DryReport)

	if cli.Schedule == "" {
		report(orchestrator.Run(ctx))
		return
	}

	scheduler, err := services.NewImportScheduler(ctx, orchestrator, cli.Schedule, report)
	if err != nil {
		log.Fatalf("can't create scheduler: %v", err)
	}
	scheduler.Start()

	<-ctx.Done()

	log.Info("Shutting down scheduler...")
	scheduler.Stop()
	log.Info("Scheduler stopped.")
}
