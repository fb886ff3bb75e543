package payload

import (
	"encoding/json"
	"fmt"
	"time"
)

/* Envelope is the immutable event envelope delivered to endpoints
 * Serialized once at creation; the stored bytes are re-sent verbatim on every
 * retry so a receiver can verify the same signature across attempts
 */
type Envelope struct {
	// Event is the full-stop delimited event type, e.g. "payment.success"
	Event string `json:"event"`

	// Timestamp is the ISO 8601 formatted time at which the event occurred
	Timestamp time.Time `json:"timestamp"`

	// Platform identifies the tenant that produced the event
	Platform string `json:"platform"`

	// Data is the free-form event data
	Data json.RawMessage `json:"data"`
}

// Validate validates the envelope structure
func (e Envelope) Validate() error {
	if e.Event == "" {
		return fmt.Errorf("event is required")
	}

	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}

	if e.Platform == "" {
		return fmt.Errorf("platform is required")
	}

	if len(e.Data) == 0 {
		return fmt.Errorf("data is required")
	}

	if !json.Valid(e.Data) {
		return fmt.Errorf("data must be valid JSON")
	}

	return nil
}

// MarshalJSON returns the JSON encoding of the envelope with an RFC 3339
// timestamp
func (e Envelope) MarshalJSON() ([]byte, error) {
	type Alias Envelope
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}

// UnmarshalJSON parses the JSON-encoded data and stores the result
func (e *Envelope) UnmarshalJSON(data []byte) error {
	type Alias Envelope
	aux := &struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("unmarshaling envelope: %w", err)
	}

	timestamp, err := time.Parse(time.RFC3339, aux.Timestamp)
	if err != nil {
		// Accept nano precision from foreign producers
		timestamp, err = time.Parse(time.RFC3339Nano, aux.Timestamp)
		if err != nil {
			return fmt.Errorf("parsing timestamp: %w", err)
		}
	}
	e.Timestamp = timestamp

	return nil
}

// New creates a new envelope for the given event, platform and data
func New(event, platform string, data any, now time.Time) (Envelope, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshaling data: %w", err)
	}

	envelope := Envelope{
		Event:     event,
		Timestamp: now.UTC(),
		Platform:  platform,
		Data:      dataBytes,
	}

	if err := envelope.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("validating envelope: %w", err)
	}

	return envelope, nil
}

// Parse parses a JSON envelope, used when replaying a stored delivery payload
func Parse(data []byte) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("unmarshaling envelope: %w", err)
	}

	if err := envelope.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("validating envelope: %w", err)
	}

	return envelope, nil
}

// Bytes returns the JSON-encoded envelope as bytes
// The returned bytes are minified (no extra whitespace)
func (e Envelope) Bytes() ([]byte, error) {
	return json.Marshal(e)
}
