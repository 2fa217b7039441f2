package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCompletedEvent is emitted once per verified cash collection. The
// confirmation worker fans it out as SMS to the retailer and, when the tenant
// has an admin phone on file, the wholesaler.
type PaymentCompletedEvent struct {
	PaymentID      uuid.UUID       `json:"paymentId"`
	AttemptID      uuid.UUID       `json:"attemptId"`
	TenantID       uuid.UUID       `json:"tenantId"`
	RetailerID     uuid.UUID       `json:"retailerId"`
	RetailerName   string          `json:"retailerName"`
	RetailerPhone  string          `json:"retailerPhone"`
	LineWorkerID   uuid.UUID       `json:"lineWorkerId"`
	LineWorkerName string          `json:"lineWorkerName"`
	Amount         decimal.Decimal `json:"amount"`
	CompletedAt    time.Time       `json:"completedAt"`
}
