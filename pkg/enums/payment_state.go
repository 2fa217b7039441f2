package enums

import "fmt"

// PaymentState is the ledger state of a persisted payment record. Records are
// only ever written in the COMPLETED state; the enum exists so reporting
// surfaces can distinguish future states without a schema change.
type PaymentState string

const (
	PaymentStateCompleted PaymentState = "COMPLETED"
)

var validPaymentStates = []PaymentState{
	PaymentStateCompleted,
}

// String implements fmt.Stringer.
func (p PaymentState) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentState.
func (p PaymentState) IsValid() bool {
	for _, candidate := range validPaymentStates {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentState converts raw input into a PaymentState.
func ParsePaymentState(value string) (PaymentState, error) {
	for _, candidate := range validPaymentStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment state %q", value)
}
