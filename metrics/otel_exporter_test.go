package metrics_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcelsud/webhook-dispatch/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCollector returns fixed values so the exporter can be exercised
// without a Redis instance
type fakeCollector struct{}

func (f *fakeCollector) Collect(ctx context.Context) (metrics.Metrics, error) {
	counts, _ := f.GetStatusCounts(ctx)
	return metrics.Metrics{StatusCounts: counts, DueBacklog: 2, Timestamp: time.Now()}, nil
}

func (f *fakeCollector) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	return map[string]int64{"pending": 3, "success": 10, "failed": 1}, nil
}

func (f *fakeCollector) GetDueBacklog(ctx context.Context) (int64, error) {
	return 2, nil
}

func (f *fakeCollector) GetActiveWorkers(ctx context.Context) ([]metrics.WorkerInfo, error) {
	return []metrics.WorkerInfo{{WorkerID: "worker-1", Status: "sweeping", LastHeartbeat: time.Now()}}, nil
}

func TestOTelExporter(t *testing.T) {
	exporter, err := metrics.NewOTelExporter(&fakeCollector{})
	require.NoError(t, err)
	defer exporter.Shutdown(context.Background())

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()

	exporter.ServeHTTP().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "webhook_delivery_status_count")
	assert.Contains(t, string(body), "webhook_delivery_due_backlog")
	assert.Contains(t, string(body), "webhook_workers_active")
}
