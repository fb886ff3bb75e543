package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/webhook-dispatch/webhook"
)

// Handlers sets up the webhook dispatch API routes
func Handlers(ctx context.Context, registrar webhook.Registrar, dispatcher webhook.UseCase, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("webhook-dispatch-api", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if metricsHandler != nil {
		r.Get("/metrics", metricsHandler.ServeHTTP)
	}

	// Webhook API routes
	r.Method(http.MethodPost, "/v1/endpoints", postEndpoint(registrar))
	r.Method(http.MethodGet, "/v1/endpoints/{endpoint_id}", getEndpoint(registrar))
	r.Method(http.MethodDelete, "/v1/endpoints/{endpoint_id}", deleteEndpoint(registrar))
	r.Method(http.MethodPost, "/v1/endpoints/{endpoint_id}/test", postTestDelivery(dispatcher))
	r.Method(http.MethodPost, "/v1/events", postEvent(dispatcher))

	return r
}
