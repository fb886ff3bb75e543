package webhook

import "time"

/* Endpoint represents a webhook subscription contract registered by a platform
 * Uses value semantics as it represents data, not behavior
 */
type Endpoint struct {
	ID       string
	Platform string
	URL      string
	Events   []EventType
	// Secret is the HMAC signing key, generated once at registration and
	// never rotated. It is returned to the caller in full exactly once.
	Secret    string
	IsActive  bool
	CreatedAt time.Time
}

// SubscribedTo reports whether the endpoint subscribes to the given event type
func (e Endpoint) SubscribedTo(event EventType) bool {
	for _, subscribed := range e.Events {
		if subscribed == event {
			return true
		}
	}
	return false
}
