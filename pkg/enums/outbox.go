package enums

import "fmt"

// OutboxEventType enumerates domain events routed through the outbox.
type OutboxEventType string

const (
	EventPaymentCompleted OutboxEventType = "payment.completed"
)

var validOutboxEventTypes = []OutboxEventType{
	EventPaymentCompleted,
}

// IsValid reports whether the value is a known OutboxEventType.
func (t OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregatePayment OutboxAggregateType = "payment"
)

var validOutboxAggregateTypes = []OutboxAggregateType{
	AggregatePayment,
}

// IsValid reports whether the value is a known OutboxAggregateType.
func (t OutboxAggregateType) IsValid() bool {
	for _, candidate := range validOutboxAggregateTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into an OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox event type %q", value)
}
