package webhook

import "errors"

// Registration-time validation errors, surfaced synchronously to the caller.
// Delivery-time failures are never returned as errors; they are recorded on
// the delivery record instead.
var (
	// ErrInvalidEndpointURL indicates the endpoint URL does not parse or
	// uses a scheme other than http/https
	ErrInvalidEndpointURL = errors.New("webhook: invalid endpoint URL")

	// ErrInvalidEventType indicates one or more requested event types are
	// not part of the known enumeration
	ErrInvalidEventType = errors.New("webhook: invalid event type")

	// ErrNoEventsSpecified indicates registration was attempted with an
	// empty event subscription set
	ErrNoEventsSpecified = errors.New("webhook: at least one event type must be specified")

	// ErrEndpointNotFound indicates the referenced endpoint does not exist
	ErrEndpointNotFound = errors.New("webhook: endpoint not found")

	// ErrDeliveryNotFound indicates the referenced delivery does not exist
	ErrDeliveryNotFound = errors.New("webhook: delivery not found")
)
