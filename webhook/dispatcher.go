package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/webhook-dispatch/webhook/payload"
	"github.com/marcelsud/webhook-dispatch/webhook/sender"
)

// Config holds the retry policy for webhook deliveries.
// Retry cadence is a policy decision, so it is a constructor argument,
// never a constant buried in the attempt logic.
type Config struct {
	MaxAttempts       int
	InitialRetryDelay time.Duration
	MaxRetryDelay     time.Duration
	Timeout           time.Duration
}

// DefaultConfig returns the production retry policy:
// 5 attempts backed off at 1m, 2m, 4m, 8m capped at 1h, 30s per-attempt timeout
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       5,
		InitialRetryDelay: time.Minute,
		MaxRetryDelay:     time.Hour,
		Timeout:           30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.InitialRetryDelay <= 0 {
		c.InitialRetryDelay = d.InitialRetryDelay
	}
	if c.MaxRetryDelay <= 0 {
		c.MaxRetryDelay = d.MaxRetryDelay
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}

// TestResult is the synchronous outcome of a test delivery
type TestResult struct {
	Success bool   `json:"success"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

// UseCase defines the delivery operations exposed to callers and workers
type UseCase interface {
	SendEvent(ctx context.Context, event EventType, platform string, data any) error
	RetryDue(ctx context.Context) error
	TestDelivery(ctx context.Context, endpointID string) (TestResult, error)
}

/* Dispatcher fans events out to subscribed endpoints and drives the
 * attempt -> schedule cycle for each delivery record
 * Explicitly constructed and injected, never a process-wide singleton,
 * so workers and tests hold a plain reference to it
 */
type Dispatcher struct {
	Repo   Repository
	sender *sender.Sender
	cfg    Config
	bo     Backoff
	logger *slog.Logger

	// now is injectable so tests can drive scheduled retries with a fake clock
	now func() time.Time

	// wg tracks in-flight fan-out goroutines so shutdown can drain them
	wg sync.WaitGroup
}

// Option configures optional Dispatcher behavior
type Option func(*Dispatcher)

// WithClock overrides the time source, used in tests
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithSender overrides the HTTP sender, used for custom transports
func WithSender(s *sender.Sender) Option {
	return func(d *Dispatcher) {
		d.sender = s
	}
}

// NewDispatcher creates a new dispatch service with dependency injection
func NewDispatcher(repo Repository, cfg Config, logger *slog.Logger, opts ...Option) *Dispatcher {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		Repo:   repo,
		sender: sender.NewSender(cfg.Timeout),
		cfg:    cfg,
		bo:     Backoff{Initial: cfg.InitialRetryDelay, Max: cfg.MaxRetryDelay},
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

/* SendEvent fans one event out to every active, subscribed endpoint
 * Fire-and-forget: deliveries run in detached goroutines and their failures
 * are logged, never returned. The producer's business operation completes on
 * its own merits regardless of delivery outcome.
 * Only envelope construction and endpoint lookup can fail synchronously,
 * because they have no side effects to roll back.
 */
func (d *Dispatcher) SendEvent(ctx context.Context, event EventType, platform string, data any) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validating event: %w", err)
	}

	endpoints, err := d.Repo.ListEndpointsByPlatform(ctx, platform)
	if err != nil {
		return fmt.Errorf("listing endpoints: %w", err)
	}

	var subscribed []Endpoint
	for _, endpoint := range endpoints {
		if endpoint.IsActive && endpoint.SubscribedTo(event) {
			subscribed = append(subscribed, endpoint)
		}
	}

	if len(subscribed) == 0 {
		d.logger.Info("no webhook endpoints subscribed",
			slog.String("event", event.String()),
			slog.String("platform", platform),
		)
		return nil
	}

	envelope, err := payload.New(event.String(), platform, data, d.now())
	if err != nil {
		return fmt.Errorf("building event envelope: %w", err)
	}

	body, err := envelope.Bytes()
	if err != nil {
		return fmt.Errorf("serializing event envelope: %w", err)
	}

	// Detach from the caller's context: cancelling the business operation
	// must not cancel webhook deliveries already fanned out
	deliveryCtx := context.WithoutCancel(ctx)

	for _, endpoint := range subscribed {
		d.wg.Add(1)
		go func(ep Endpoint) {
			defer d.wg.Done()
			d.deliver(deliveryCtx, ep, envelope, body)
		}(endpoint)
	}

	return nil
}

// Wait blocks until all in-flight fan-out deliveries finish.
// Called on shutdown and by tests; producers never call this.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// deliver creates the delivery record for one endpoint and drives its first
// attempt. Failures are logged here, never propagated.
func (d *Dispatcher) deliver(ctx context.Context, endpoint Endpoint, envelope payload.Envelope, body []byte) {
	now := d.now()
	delivery := Delivery{
		ID:         uuid.New().String(),
		EndpointID: endpoint.ID,
		Event:      EventType(envelope.Event),
		Payload:    body,
		Status:     Pending,
		Attempts:   0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := d.Repo.CreateDelivery(ctx, delivery); err != nil {
		d.logger.Error("creating delivery record",
			slog.String("endpoint_id", endpoint.ID),
			slog.String("event", envelope.Event),
			slog.Any("error", err),
		)
		return
	}

	d.attempt(ctx, delivery, endpoint, envelope)
}

/* attempt performs one delivery attempt and hands the outcome to the
 * scheduler. attempts = priorAttempts + 1.
 */
func (d *Dispatcher) attempt(ctx context.Context, delivery Delivery, endpoint Endpoint, envelope payload.Envelope) {
	attempts := delivery.Attempts + 1
	timestamp := envelope.Timestamp.UTC().Format(time.RFC3339)

	result, err := d.sender.Send(ctx, endpoint.URL, endpoint.Secret, envelope.Event, timestamp, delivery.Payload)
	if err != nil {
		// Transport failure or timeout: no status code to record
		d.scheduleRetry(ctx, delivery, attempts, 0, "", err.Error())
		return
	}

	if !result.Success {
		d.scheduleRetry(ctx, delivery, attempts, result.Status, result.Body, "")
		return
	}

	delivery.Status = Success
	delivery.Attempts = attempts
	delivery.NextRetry = nil
	delivery.ResponseStatus = result.Status
	delivery.ResponseBody = result.Body
	delivery.ErrorMessage = ""
	delivery.UpdatedAt = d.now()

	if err := d.Repo.UpdateDelivery(ctx, delivery); err != nil {
		d.logger.Error("recording delivery success",
			slog.String("delivery_id", delivery.ID),
			slog.Any("error", err),
		)
		return
	}

	d.logger.Info("webhook delivered",
		slog.String("delivery_id", delivery.ID),
		slog.String("url", endpoint.URL),
		slog.Int("attempt", attempts),
	)
}

/* scheduleRetry persists the outcome of a failed attempt
 * Below the attempt ceiling: status stays pending and nextRetry is pushed out
 * by exponential backoff. At the ceiling: terminal failure, nextRetry cleared.
 */
func (d *Dispatcher) scheduleRetry(ctx context.Context, delivery Delivery, attempts, responseStatus int, responseBody, errorMessage string) {
	delivery.Attempts = attempts
	delivery.ResponseStatus = responseStatus
	delivery.ResponseBody = responseBody
	delivery.ErrorMessage = errorMessage
	delivery.UpdatedAt = d.now()

	if attempts >= d.cfg.MaxAttempts {
		delivery.Status = Failed
		delivery.NextRetry = nil

		if err := d.Repo.UpdateDelivery(ctx, delivery); err != nil {
			d.logger.Error("recording permanent delivery failure",
				slog.String("delivery_id", delivery.ID),
				slog.Any("error", err),
			)
			return
		}

		d.logger.Error("webhook delivery failed permanently",
			slog.String("delivery_id", delivery.ID),
			slog.Int("attempts", attempts),
			slog.Int("response_status", responseStatus),
			slog.String("error", errorMessage),
		)
		return
	}

	next := d.now().Add(d.bo.Delay(attempts))
	delivery.Status = Pending
	delivery.NextRetry = &next

	if err := d.Repo.UpdateDelivery(ctx, delivery); err != nil {
		d.logger.Error("scheduling delivery retry",
			slog.String("delivery_id", delivery.ID),
			slog.Any("error", err),
		)
		return
	}

	d.logger.Warn("webhook delivery failed, retry scheduled",
		slog.String("delivery_id", delivery.ID),
		slog.Int("attempt", attempts),
		slog.Time("next_retry", next),
		slog.Int("response_status", responseStatus),
	)
}

/* RetryDue sweeps every pending delivery whose nextRetry has elapsed and
 * replays its stored payload through the attempt -> schedule cycle
 * Each delivery is processed independently; one failure never aborts the
 * sweep for the rest
 */
func (d *Dispatcher) RetryDue(ctx context.Context) error {
	now := d.now()

	due, err := d.Repo.ListDueDeliveries(ctx, now)
	if err != nil {
		return fmt.Errorf("listing due deliveries: %w", err)
	}

	if len(due) == 0 {
		return nil
	}

	d.logger.Info("retrying due webhook deliveries", slog.Int("count", len(due)))

	for _, delivery := range due {
		// Terminal records are immutable even if a stale due-list
		// hands them back
		if delivery.Status.IsFinal() {
			continue
		}

		endpoint, err := d.Repo.GetEndpoint(ctx, delivery.EndpointID)
		if err != nil {
			if errors.Is(err, ErrEndpointNotFound) {
				d.abandon(ctx, delivery, "webhook endpoint is inactive or was deleted")
			} else {
				d.logger.Error("loading endpoint for retry",
					slog.String("delivery_id", delivery.ID),
					slog.Any("error", err),
				)
			}
			continue
		}

		// Orphaned subscription: stop retrying into the void
		if !endpoint.IsActive {
			d.abandon(ctx, delivery, "webhook endpoint is inactive or was deleted")
			continue
		}

		envelope, err := payload.Parse(delivery.Payload)
		if err != nil {
			d.logger.Error("parsing stored delivery payload",
				slog.String("delivery_id", delivery.ID),
				slog.Any("error", err),
			)
			continue
		}

		d.attempt(ctx, delivery, endpoint, envelope)
	}

	return nil
}

// abandon marks a delivery as permanently failed without an HTTP attempt
func (d *Dispatcher) abandon(ctx context.Context, delivery Delivery, reason string) {
	delivery.Status = Failed
	delivery.NextRetry = nil
	delivery.ErrorMessage = reason
	delivery.UpdatedAt = d.now()

	if err := d.Repo.UpdateDelivery(ctx, delivery); err != nil {
		d.logger.Error("abandoning delivery",
			slog.String("delivery_id", delivery.ID),
			slog.Any("error", err),
		)
		return
	}

	d.logger.Warn("webhook delivery abandoned",
		slog.String("delivery_id", delivery.ID),
		slog.String("reason", reason),
	)
}

/* TestDelivery sends a single synchronous test event to an endpoint
 * No delivery record is created and no retry is scheduled; the result goes
 * straight back to the caller. Used for endpoint-configuration smoke testing.
 */
func (d *Dispatcher) TestDelivery(ctx context.Context, endpointID string) (TestResult, error) {
	endpoint, err := d.Repo.GetEndpoint(ctx, endpointID)
	if err != nil {
		return TestResult{}, fmt.Errorf("getting endpoint: %w", err)
	}

	envelope, err := payload.New(PaymentSuccess.String(), endpoint.Platform, map[string]any{
		"test":    true,
		"message": "This is a test webhook event",
	}, d.now())
	if err != nil {
		return TestResult{}, fmt.Errorf("building test envelope: %w", err)
	}

	body, err := envelope.Bytes()
	if err != nil {
		return TestResult{}, fmt.Errorf("serializing test envelope: %w", err)
	}

	timestamp := envelope.Timestamp.UTC().Format(time.RFC3339)
	result, err := d.sender.Send(ctx, endpoint.URL, endpoint.Secret, envelope.Event, timestamp, body)
	if err != nil {
		return TestResult{
			Success: false,
			Message: fmt.Sprintf("failed to deliver test webhook: %v", err),
		}, nil
	}

	message := "test webhook delivered successfully"
	if !result.Success {
		message = fmt.Sprintf("webhook endpoint returned %d", result.Status)
	}

	return TestResult{
		Success: result.Success,
		Status:  result.Status,
		Message: message,
	}, nil
}
