package webhook

import "fmt"

/* EventType identifies a business event that endpoints can subscribe to
 * Hierarchical, full-stop delimited names: "payment.success", "merchant.created"
 */
type EventType string

const (
	PaymentSuccess    EventType = "payment.success"
	PaymentFailed     EventType = "payment.failed"
	PaymentRefunded   EventType = "payment.refunded"
	MerchantCreated   EventType = "merchant.created"
	MerchantApproved  EventType = "merchant.approved"
	MerchantSuspended EventType = "merchant.suspended"
)

// KnownEventTypes returns every event type the system can emit
func KnownEventTypes() []EventType {
	return []EventType{
		PaymentSuccess,
		PaymentFailed,
		PaymentRefunded,
		MerchantCreated,
		MerchantApproved,
		MerchantSuspended,
	}
}

// String returns the wire representation of the event type
func (e EventType) String() string {
	return string(e)
}

// Validate checks if the event type is part of the known enumeration
func (e EventType) Validate() error {
	for _, known := range KnownEventTypes() {
		if e == known {
			return nil
		}
	}
	return fmt.Errorf("unknown event type: %s", e)
}
