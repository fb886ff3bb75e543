package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-dispatch/config"
	"github.com/marcelsud/webhook-dispatch/webhook"
	"github.com/marcelsud/webhook-dispatch/webhook/redis"
	"github.com/marcelsud/webhook-dispatch/worker"
)

/* Standalone retry worker process
 * Runs the same sweep loop as the API, for deployments where retries are
 * scaled independently of the HTTP surface. Overlapping sweeps are safe:
 * each due delivery is claimed atomically by whichever process gets to it
 * first
 */

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := redis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer repo.Close(ctx)

	if restored, err := repo.ReconcileDueSchedule(ctx); err != nil {
		logger.Warn("reconciling retry schedule", slog.Any("error", err))
	} else if restored > 0 {
		logger.Info("restored stranded deliveries to retry schedule", slog.Int("count", restored))
	}

	dispatcher := webhook.NewDispatcher(repo, webhook.Config{
		MaxAttempts:       cfg.WebhookMaxAttempts,
		InitialRetryDelay: cfg.InitialRetryDelay(),
		MaxRetryDelay:     cfg.MaxRetryDelay(),
		Timeout:           cfg.WebhookTimeout(),
	}, logger)

	workerID := fmt.Sprintf("worker-%s", uuid.New().String())
	retryWorker := worker.NewRetryWorker(workerID, dispatcher, cfg.RetryWorkerInterval(), logger).
		WithHeartbeat(repo)

	retryWorker.Start()
	logger.Info("retry worker started",
		slog.String("worker_id", workerID),
		slog.Duration("interval", cfg.RetryWorkerInterval()),
	)

	<-ctx.Done()
	logger.Info("retry worker shutting down", slog.String("worker_id", workerID))
	retryWorker.Stop()
	dispatcher.Wait()
	return nil
}
