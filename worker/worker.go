package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper is the slice of the dispatch service the worker drives
type Sweeper interface {
	RetryDue(ctx context.Context) error
}

// Heartbeat records worker liveness; optional
type Heartbeat interface {
	SetWorkerHeartbeat(ctx context.Context, workerID, status string) error
}

// DefaultInterval is how often the worker checks for due deliveries
const DefaultInterval = 60 * time.Second

/* RetryWorker periodically invokes the dispatch service's retry sweep,
 * providing the passage-of-time driver for scheduled retries
 * Holds an explicit reference to the sweeper instead of reaching for a
 * process-wide singleton, so it can be tested against a fake
 */
type RetryWorker struct {
	mu        sync.Mutex
	sweeper   Sweeper
	heartbeat Heartbeat
	workerID  string
	interval  time.Duration
	logger    *slog.Logger

	// ctl serializes compound control sequences such as UpdateInterval,
	// which stop and restart the loop as separate steps
	ctl sync.Mutex

	cancel  context.CancelFunc
	stopped chan struct{}
	running bool
}

// NewRetryWorker creates a retry worker with the given sweep interval.
// A zero interval falls back to DefaultInterval.
func NewRetryWorker(workerID string, sweeper Sweeper, interval time.Duration, logger *slog.Logger) *RetryWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryWorker{
		sweeper:  sweeper,
		workerID: workerID,
		interval: interval,
		logger:   logger,
	}
}

// WithHeartbeat attaches a liveness recorder, called once per sweep
func (w *RetryWorker) WithHeartbeat(hb Heartbeat) *RetryWorker {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.heartbeat = hb
	return w
}

// Start launches the periodic sweep loop. The first sweep runs immediately.
// Starting an already running worker is a no-op.
func (w *RetryWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		w.logger.Warn("retry worker is already running")
		return
	}

	w.logger.Info("starting retry worker",
		slog.String("worker_id", w.workerID),
		slog.Duration("interval", w.interval),
	)

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.stopped = make(chan struct{})
	w.running = true

	go w.run(ctx, w.interval, w.stopped)
}

/* Stop halts future sweeps and waits for an in-progress sweep to return
 * In-flight HTTP attempts are not force-killed; the worker simply stops
 * scheduling new sweeps
 */
func (w *RetryWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.logger.Warn("retry worker is not running")
		return
	}

	w.logger.Info("stopping retry worker", slog.String("worker_id", w.workerID))

	w.cancel()
	stopped := w.stopped
	w.running = false
	w.mu.Unlock()

	<-stopped
}

// IsRunning reports whether the worker is currently sweeping
func (w *RetryWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// UpdateInterval changes the sweep interval, restarting the worker if it is
// currently running. Concurrent calls are serialized, so the last call to
// return owns the final interval.
func (w *RetryWorker) UpdateInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	w.ctl.Lock()
	defer w.ctl.Unlock()

	wasRunning := w.IsRunning()
	if wasRunning {
		w.Stop()
	}

	w.mu.Lock()
	w.interval = interval
	w.mu.Unlock()

	if wasRunning {
		w.Start()
	}
}

func (w *RetryWorker) run(ctx context.Context, interval time.Duration, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep runs one retry pass; errors are logged, never fatal, so the loop
// tries again on the next tick
func (w *RetryWorker) sweep(ctx context.Context) {
	if w.heartbeat != nil {
		if err := w.heartbeat.SetWorkerHeartbeat(ctx, w.workerID, "sweeping"); err != nil {
			w.logger.Warn("recording worker heartbeat", slog.Any("error", err))
		}
	}

	if err := w.sweeper.RetryDue(ctx); err != nil {
		w.logger.Error("retry sweep failed", slog.Any("error", err))
	}
}
