package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-dispatch/webhook/signature"
)

/* Registry represents the endpoint registration business logic
 * Uses pointer semantics as it's an API, not data
 */

// Registrar defines the business operations for endpoint management
type Registrar interface {
	Register(ctx context.Context, platform, endpointURL string, events []EventType) (Endpoint, string, error)
	Get(ctx context.Context, id string) (Endpoint, error)
	Deactivate(ctx context.Context, id string) error
	Subscribed(ctx context.Context, platform string, event EventType) ([]Endpoint, error)
}

type Registry struct {
	Repo Repository
	// Environment is the runtime environment name; "production" triggers
	// the plain-http warning on registration
	Environment string
	Logger      *slog.Logger
}

// NewRegistry creates a new endpoint registry with dependency injection
func NewRegistry(repo Repository, environment string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		Repo:        repo,
		Environment: environment,
		Logger:      logger,
	}
}

/* Register validates and stores a new webhook endpoint
 * The generated plaintext secret is returned exactly once; it is never
 * surfaced again after this call
 * Validation failures leave no partial state behind
 */
func (r *Registry) Register(ctx context.Context, platform, endpointURL string, events []EventType) (Endpoint, string, error) {
	parsed, err := url.Parse(endpointURL)
	if err != nil {
		return Endpoint{}, "", fmt.Errorf("%w: %s", ErrInvalidEndpointURL, endpointURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Endpoint{}, "", fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidEndpointURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return Endpoint{}, "", fmt.Errorf("%w: missing host in %s", ErrInvalidEndpointURL, endpointURL)
	}

	// Soft policy: plain http is accepted in production but flagged
	if parsed.Scheme == "http" && r.Environment == "production" {
		r.Logger.Warn("webhook endpoint uses HTTP instead of HTTPS",
			slog.String("platform", platform),
			slog.String("url", endpointURL),
		)
	}

	if len(events) == 0 {
		return Endpoint{}, "", ErrNoEventsSpecified
	}

	var unknown []string
	for _, event := range events {
		if err := event.Validate(); err != nil {
			unknown = append(unknown, event.String())
		}
	}
	if len(unknown) > 0 {
		return Endpoint{}, "", fmt.Errorf("%w: %s", ErrInvalidEventType, strings.Join(unknown, ", "))
	}

	secret, err := signature.GenerateSecret()
	if err != nil {
		return Endpoint{}, "", fmt.Errorf("generating endpoint secret: %w", err)
	}

	endpoint := Endpoint{
		ID:        uuid.New().String(),
		Platform:  platform,
		URL:       endpointURL,
		Events:    events,
		Secret:    secret,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if _, err := r.Repo.CreateEndpoint(ctx, endpoint); err != nil {
		return Endpoint{}, "", fmt.Errorf("storing endpoint: %w", err)
	}

	r.Logger.Info("webhook endpoint registered",
		slog.String("endpoint_id", endpoint.ID),
		slog.String("platform", platform),
		slog.Int("events", len(events)),
	)

	return endpoint, secret, nil
}

// Get retrieves an endpoint by ID
func (r *Registry) Get(ctx context.Context, id string) (Endpoint, error) {
	endpoint, err := r.Repo.GetEndpoint(ctx, id)
	if err != nil {
		return Endpoint{}, fmt.Errorf("getting endpoint: %w", err)
	}
	return endpoint, nil
}

// Deactivate excludes the endpoint from fan-out and retries
func (r *Registry) Deactivate(ctx context.Context, id string) error {
	if err := r.Repo.DeactivateEndpoint(ctx, id); err != nil {
		return fmt.Errorf("deactivating endpoint: %w", err)
	}
	r.Logger.Info("webhook endpoint deactivated", slog.String("endpoint_id", id))
	return nil
}

// Subscribed returns active endpoints for the platform that subscribe to the
// given event type. Used exclusively by fan-out.
func (r *Registry) Subscribed(ctx context.Context, platform string, event EventType) ([]Endpoint, error) {
	endpoints, err := r.Repo.ListEndpointsByPlatform(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("listing endpoints: %w", err)
	}

	var subscribed []Endpoint
	for _, endpoint := range endpoints {
		if endpoint.IsActive && endpoint.SubscribedTo(event) {
			subscribed = append(subscribed, endpoint)
		}
	}
	return subscribed, nil
}
