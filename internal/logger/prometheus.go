package logger

import (
	"github.com/maxaizer/jobhub-importer/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// prometheusHook counts errors by error_type. Warnings are counted only when they are
// typed: a failed AI call or page fetch drops one job and is logged as a warning.
type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	errorType, typed := entry.Data[ErrorTypeField].(string)
	if entry.Level == log.WarnLevel && !typed {
		return nil
	}
	if !typed {
		errorType = "unknown"
	}

	metrics.ErrorsCounter.WithLabelValues(errorType, entry.Level.String()).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.WarnLevel,
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func addPrometheusHook() {
	log.AddHook(&prometheusHook{})
}
