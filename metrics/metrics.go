package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the webhook delivery system.
type Metrics struct {
	// StatusCounts maps delivery status name to count of deliveries in
	// that status
	StatusCounts map[string]int64 `json:"status_counts"`

	// DueBacklog is the number of deliveries whose scheduled retry time
	// has already elapsed
	DueBacklog int64 `json:"due_backlog"`

	// Workers lists retry workers with a live heartbeat
	Workers []WorkerInfo `json:"workers"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// WorkerInfo represents information about an active retry worker.
type WorkerInfo struct {
	// WorkerID is a unique identifier for the worker
	WorkerID string `json:"worker_id"`

	// Status is the current status of the worker (e.g., "idle", "sweeping")
	Status string `json:"status"`

	// LastHeartbeat is the timestamp of the last heartbeat
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// Collector defines the interface for collecting metrics from the delivery system.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetStatusCounts returns the count of deliveries by status
	GetStatusCounts(ctx context.Context) (map[string]int64, error)

	// GetDueBacklog returns the number of deliveries overdue for retry
	GetDueBacklog(ctx context.Context) (int64, error)

	// GetActiveWorkers returns information about active retry workers
	GetActiveWorkers(ctx context.Context) ([]WorkerInfo, error)
}
