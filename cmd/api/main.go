package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-dispatch/config"
	"github.com/marcelsud/webhook-dispatch/internal/http/chi"
	"github.com/marcelsud/webhook-dispatch/metrics"
	"github.com/marcelsud/webhook-dispatch/provision"
	"github.com/marcelsud/webhook-dispatch/webhook"
	"github.com/marcelsud/webhook-dispatch/webhook/redis"
	"github.com/marcelsud/webhook-dispatch/worker"
)

const TIMEOUT = 30 * time.Second

/*
 * As importações devem ser feitas apenas em uma direção: para baixo. O aplicativo (api, worker) importa camadas de negócios,
 * que importam a camada de armazenamento
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

	if cfg.EndpointsFile != "" {
		loader := provision.NewLoader()
		if err := loader.Load(cfg.EndpointsFile); err != nil {
			return err
		}
		if err := loader.Apply(ctx, repo); err != nil {
			return err
		}
		logger.Info("pre-provisioned endpoints loaded",
			slog.String("file", cfg.EndpointsFile),
			slog.Int("count", len(loader.List())),
		)
	}

	registry := webhook.NewRegistry(repo, cfg.Environment, logger)
	dispatcher := webhook.NewDispatcher(repo, webhook.Config{
		MaxAttempts:       cfg.WebhookMaxAttempts,
		InitialRetryDelay: cfg.InitialRetryDelay(),
		MaxRetryDelay:     cfg.MaxRetryDelay(),
		Timeout:           cfg.WebhookTimeout(),
	}, logger)

	workerID := fmt.Sprintf("api-%s", uuid.New().String())
	retryWorker := worker.NewRetryWorker(workerID, dispatcher, cfg.RetryWorkerInterval(), logger).
		WithHeartbeat(repo)
	retryWorker.Start()
	defer retryWorker.Stop()

	exporter, err := metrics.NewOTelExporter(metrics.NewRedisCollector(repo))
	if err != nil {
		return err
	}
	defer exporter.Shutdown(ctx)

	r := chi.Handlers(ctx, registry, dispatcher, exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info("webhook dispatch API listening", slog.String("port", cfg.Port))
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	if err := <-errShutdown; err != nil {
		return err
	}

	// Let in-flight fan-out deliveries finish before the process exits
	dispatcher.Wait()
	return nil
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	default:
		errShutdown <- fmt.Errorf("forcing closing the server")
	}
}
