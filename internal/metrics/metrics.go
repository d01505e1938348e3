package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "importer_errors_total",
			Help: "Total number of occurred errors by type and log level.",
		},
		[]string{"type", "level"},
	)
	ImportedJobsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "importer_jobs_imported_total",
			Help: "Total number of persisted jobs.",
		},
		[]string{"source", "language"},
	)
	DroppedJobsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "importer_jobs_dropped_total",
			Help: "Total number of jobs dropped by a pipeline gate.",
		},
		[]string{"reason"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "importer_run_duration_seconds",
			Help:    "Duration of each import run in seconds.",
			Buckets: []float64{60, 300, 900, 1800, 3600, 7200},
		},
	)
	StepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "importer_job_step_duration_seconds",
			Help:       "Duration of each step of the per-job pipeline.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
)

const (
	StepFetchDescription = "fetch_description"
	StepCategorization   = "ai_categorization"
	StepGeocoding        = "geocoding"
	StepPersist          = "persist"
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(ImportedJobsCounter)
	prometheus.MustRegister(DroppedJobsCounter)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(StepDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}
