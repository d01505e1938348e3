package events

import (
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobhub-importer/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SubscribeMetrics_CountsImportedAndDropped(t *testing.T) {
	bus := EventBus.New()
	require.NoError(t, SubscribeMetrics(bus))

	imported := metrics.ImportedJobsCounter.WithLabelValues("Remotive", "en")
	dropped := metrics.DroppedJobsCounter.WithLabelValues(string(DropStale))
	importedBefore, droppedBefore := testutil.ToFloat64(imported), testutil.ToFloat64(dropped)

	bus.Publish(JobImportedTopic, JobImported{ID: 1, Link: "http://x/1", Source: "Remotive", Language: "en"})
	bus.Publish(JobDroppedTopic, JobDropped{Link: "http://x/2", Source: "Remotive", Reason: DropStale})
	bus.Publish(JobDroppedTopic, JobDropped{Link: "http://x/3", Source: "Remotive", Reason: DropStale})

	assert.Equal(t, importedBefore+1, testutil.ToFloat64(imported))
	assert.Equal(t, droppedBefore+2, testutil.ToFloat64(dropped))
}
