package config

import (
	"errors"
	"fmt"
	"time"
)

var DefaultLanguages = []string{"en", "it", "es", "fr", "de"}

var DefaultKeywords = []string{
	"software engineer", "software developer", "web developer", "frontend", "backend",
	"fullstack", "devops", "mobile developer", "data scientist", "data engineer",
	"cloud engineer", "sysadmin", "cybersecurity", "java", "python", "javascript",
	"typescript", "golang", "rust", "c++", "c#", ".net", "php", "ruby", "kotlin", "swift",
	"react", "angular", "vue", "node.js", "django", "spring boot", "solidity", "blockchain",
	"machine learning", "ai engineer", "programmatore", "sviluppatore", "laravel",
}

type PipelineConfig struct {
	Languages            []string      `mapstructure:"languages"`
	Keywords             []string      `mapstructure:"keywords"`
	LimitPerLanguage     int           `mapstructure:"limit_per_language"`
	Days                 int           `mapstructure:"days"`
	AIDelay              time.Duration `mapstructure:"ai_delay"`
	PageDelay            time.Duration `mapstructure:"page_delay"`
	UnproductivePageCap  int           `mapstructure:"unproductive_page_cap"`
	MaxPages             int           `mapstructure:"max_pages"`
	DescriptionMinLength int           `mapstructure:"description_min_length"`
	ExtractTimeout       time.Duration `mapstructure:"extract_timeout"`
}

func (config PipelineConfig) validate() error {
	var errs []error

	if len(config.Languages) == 0 {
		errs = append(errs, fmt.Errorf("missing variable: languages"))
	}
	if len(config.Keywords) == 0 {
		errs = append(errs, fmt.Errorf("missing variable: keywords"))
	}
	if config.LimitPerLanguage <= 0 {
		errs = append(errs, fmt.Errorf("limit_per_language must be positive"))
	}
	if config.Days < 0 {
		errs = append(errs, fmt.Errorf("days must not be negative"))
	}
	if config.MaxPages <= 0 {
		errs = append(errs, fmt.Errorf("max_pages must be positive"))
	}

	return errors.Join(errs...)
}

func (config PipelineConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"pipeline.limit_per_language": "LIMIT_PER_LANGUAGE",
		"pipeline.days":               "DAYS",
	})
}
