package webhook

import (
	"context"
	"time"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// EndpointReader provides read operations for webhook endpoints
type EndpointReader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	GetEndpoint(ctx context.Context, id string) (Endpoint, error)
	ListEndpointsByPlatform(ctx context.Context, platform string) ([]Endpoint, error)
}

// EndpointWriter provides write operations for webhook endpoints
type EndpointWriter interface {
	// CreateEndpoint persists a new endpoint and returns its ID
	CreateEndpoint(ctx context.Context, endpoint Endpoint) (string, error)
	// DeactivateEndpoint flips isActive off; the only endpoint state
	// transition this subsystem performs
	DeactivateEndpoint(ctx context.Context, id string) error
}

// DeliveryReader provides read operations for delivery records
type DeliveryReader interface {
	GetDelivery(ctx context.Context, id string) (Delivery, error)
	/* ListDueDeliveries returns pending deliveries whose nextRetry has
	 * elapsed. Implementations are expected to claim returned records so
	 * that concurrent sweeps never hand the same delivery to two callers;
	 * a claimed delivery re-enters the due set when a retry is rescheduled
	 */
	ListDueDeliveries(ctx context.Context, before time.Time) ([]Delivery, error)
}

// DeliveryWriter provides write operations for delivery records
type DeliveryWriter interface {
	CreateDelivery(ctx context.Context, delivery Delivery) (string, error)
	// UpdateDelivery overwrites the mutable fields of the record:
	// status, attempts, nextRetry, and the last-attempt diagnostics
	UpdateDelivery(ctx context.Context, delivery Delivery) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	EndpointReader
	EndpointWriter
	DeliveryReader
	DeliveryWriter
	Close(ctx context.Context) error
}
