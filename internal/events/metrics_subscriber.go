package events

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobhub-importer/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// SubscribeMetrics keeps the job counters in sync with pipeline events.
func SubscribeMetrics(bus EventBus.Bus) error {
	if err := bus.Subscribe(JobImportedTopic, onJobImported); err != nil {
		return err
	}
	return bus.Subscribe(JobDroppedTopic, onJobDropped)
}

func onJobImported(event JobImported) {
	metrics.ImportedJobsCounter.WithLabelValues(event.Source, event.Language).Inc()
	log.Debugf("job %v imported from %v (id %v)", event.Link, event.Source, event.ID)
}

func onJobDropped(event JobDropped) {
	metrics.DroppedJobsCounter.WithLabelValues(string(event.Reason)).Inc()
}
