package webhook

import "time"

/* Delivery represents one delivery lineage for a single (event, endpoint) pair
 * Payload holds the serialized event envelope, fixed at creation and re-sent
 * verbatim on every retry so the signature reproduces byte for byte
 */
type Delivery struct {
	ID         string
	EndpointID string
	Event      EventType
	Payload    []byte
	Status     Status
	Attempts   int
	// NextRetry is nil when no retry is scheduled: never failed, exhausted,
	// or succeeded
	NextRetry *time.Time

	// Diagnostics from the most recent attempt, overwritten each attempt
	ResponseStatus int
	ResponseBody   string
	ErrorMessage   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDue reports whether the delivery is scheduled for a retry at or before now
func (d Delivery) IsDue(now time.Time) bool {
	return d.Status == Pending && d.NextRetry != nil && !d.NextRetry.After(now)
}
