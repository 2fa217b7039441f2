package enums

import "fmt"

// AttemptState tracks a single cash-collection attempt for a line worker.
type AttemptState string

const (
	AttemptStateIdle          AttemptState = "idle"
	AttemptStateAmountEntered AttemptState = "amount_entered"
	AttemptStateOTPSent       AttemptState = "otp_sent"
	AttemptStateVerified      AttemptState = "verified"
	AttemptStateAbandoned     AttemptState = "abandoned"
)

var validAttemptStates = []AttemptState{
	AttemptStateIdle,
	AttemptStateAmountEntered,
	AttemptStateOTPSent,
	AttemptStateVerified,
	AttemptStateAbandoned,
}

// String implements fmt.Stringer.
func (a AttemptState) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AttemptState.
func (a AttemptState) IsValid() bool {
	for _, candidate := range validAttemptStates {
		if candidate == a {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the attempt can no longer transition.
func (a AttemptState) IsTerminal() bool {
	return a == AttemptStateVerified || a == AttemptStateAbandoned
}

// ParseAttemptState converts raw input into an AttemptState.
func ParseAttemptState(value string) (AttemptState, error) {
	for _, candidate := range validAttemptStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid attempt state %q", value)
}
