package collections

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahilkadam/medipay-backend/pkg/enums"
)

// Attempt is the transient per-line-worker collection state. It lives in
// Redis until the attempt commits or is abandoned; the payments table is the
// only durable record.
type Attempt struct {
	ID             uuid.UUID          `json:"id"`
	TenantID       uuid.UUID          `json:"tenantId"`
	LineWorkerID   uuid.UUID          `json:"lineWorkerId"`
	LineWorkerName string             `json:"lineWorkerName"`
	RetailerID     uuid.UUID          `json:"retailerId"`
	RetailerName   string             `json:"retailerName"`
	RetailerPhone  string             `json:"retailerPhone"`
	Amount         decimal.Decimal    `json:"amount"`
	Code           string             `json:"code,omitempty"`
	VerifyAttempts int                `json:"verifyAttempts"`
	State          enums.AttemptState `json:"state"`
	InitiatedAt    time.Time          `json:"initiatedAt"`
	OTPSentAt      *time.Time         `json:"otpSentAt,omitempty"`
}

// HasPositiveAmount reports whether an amount has been entered and is > 0.
func (a *Attempt) HasPositiveAmount() bool {
	return a != nil && a.Amount.IsPositive()
}

// CodeIssued reports whether the single OTP for this attempt was already sent.
func (a *Attempt) CodeIssued() bool {
	return a != nil && a.State == enums.AttemptStateOTPSent
}
