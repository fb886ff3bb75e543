package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/webhook-dispatch/webhook/redis"
)

// RedisCollector implements the Collector interface on top of the Redis
// repository's counters, due set and worker heartbeats
type RedisCollector struct {
	repo *redis.Repository
}

// NewRedisCollector creates a new Redis metrics collector
func NewRedisCollector(repo *redis.Repository) *RedisCollector {
	return &RedisCollector{
		repo: repo,
	}
}

// Collect gathers all metrics from Redis
func (c *RedisCollector) Collect(ctx context.Context) (Metrics, error) {
	statusCounts, err := c.GetStatusCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting status counts: %w", err)
	}

	backlog, err := c.GetDueBacklog(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting due backlog: %w", err)
	}

	workers, err := c.GetActiveWorkers(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting active workers: %w", err)
	}

	return Metrics{
		StatusCounts: statusCounts,
		DueBacklog:   backlog,
		Workers:      workers,
		Timestamp:    time.Now(),
	}, nil
}

// GetStatusCounts returns counts of deliveries grouped by status
func (c *RedisCollector) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	return c.repo.CountDeliveriesByStatus(ctx)
}

// GetDueBacklog returns the number of deliveries overdue for retry
func (c *RedisCollector) GetDueBacklog(ctx context.Context) (int64, error) {
	return c.repo.CountDueDeliveries(ctx, time.Now())
}

// GetActiveWorkers returns retry workers with a live heartbeat
func (c *RedisCollector) GetActiveWorkers(ctx context.Context) ([]WorkerInfo, error) {
	heartbeats, err := c.repo.GetActiveWorkers(ctx)
	if err != nil {
		return nil, err
	}

	workers := make([]WorkerInfo, 0, len(heartbeats))
	for _, hb := range heartbeats {
		workers = append(workers, WorkerInfo{
			WorkerID:      hb.WorkerID,
			Status:        hb.Status,
			LastHeartbeat: hb.LastHeartbeat,
		})
	}

	return workers, nil
}
