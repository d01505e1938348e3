package config

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	AI        AIConfig        `mapstructure:"ai"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	DB        DBConfig        `mapstructure:"db"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

const defaultConfigFile = "./configs/config.yaml"

// Get loads the given config file, falling back to CONFIG_PATH and then to the default
// one, and exits on error.
func Get(file string) *Config {
	if file == "" {
		file = defaultConfigFile
		if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
			file = value
		}
	}

	config, err := Load(file)
	if err != nil {
		log.Fatal(err)
	}
	return config
}

func Load(file string) (*Config, error) {

	viper.Reset()
	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	setDefaults()

	err := bindEnvironmentVariables()
	if err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %v: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.app_name", "jobhub-importer")
	viper.SetDefault("logger.output_file", "./logs/errors.log")

	viper.SetDefault("ai.model", "gemini-2.0-flash")
	viper.SetDefault("ai.max_requests_per_minute", 15)
	viper.SetDefault("ai.max_requests_per_day", 1500)

	viper.SetDefault("db.busy_timeout", "5s")

	viper.SetDefault("geocoding.max_requests_per_second", 10)
	viper.SetDefault("geocoding.cache_ttl", "24h")

	viper.SetDefault("pipeline.languages", DefaultLanguages)
	viper.SetDefault("pipeline.keywords", DefaultKeywords)
	viper.SetDefault("pipeline.limit_per_language", 50)
	viper.SetDefault("pipeline.days", 1)
	viper.SetDefault("pipeline.ai_delay", "1s")
	viper.SetDefault("pipeline.page_delay", "2s")
	viper.SetDefault("pipeline.unproductive_page_cap", 5)
	viper.SetDefault("pipeline.max_pages", 100)
	viper.SetDefault("pipeline.description_min_length", 500)
	viper.SetDefault("pipeline.extract_timeout", "10s")

	viper.SetDefault("sources.enabled", DefaultSources)
	viper.SetDefault("sources.rss_feeds_file", "./configs/feeds.yaml")
	viper.SetDefault("sources.max_requests_per_second", 2)
	viper.SetDefault("sources.request_timeout", "15s")

	viper.SetDefault("metrics.port", 8080)
}

func bindEnvironmentVariables() error {
	var errs []error

	sections := map[string]interface{ bindEnvironmentVariables() error }{
		"LoggerConfig":    LoggerConfig{},
		"AIConfig":        AIConfig{},
		"GeocodingConfig": GeocodingConfig{},
		"DBConfig":        DBConfig{},
		"PipelineConfig":  PipelineConfig{},
		"SourcesConfig":   SourcesConfig{},
		"TelegramConfig":  TelegramConfig{},
		"MetricsConfig":   MetricsConfig{},
	}

	for name, section := range sections {
		if err := section.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.AI.validate(); err != nil {
		errs = append(errs, fmt.Errorf("AIConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Pipeline.validate(); err != nil {
		errs = append(errs, fmt.Errorf("PipelineConfig: %w", err))
	}

	if err := config.Sources.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SourcesConfig: %w", err))
	}

	if err := config.Metrics.validate(); err != nil {
		errs = append(errs, fmt.Errorf("MetricsConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

// bindAll binds every viper key to its environment variable and collects the failures.
func bindAll(bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
