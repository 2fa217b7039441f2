package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahilkadam/medipay-backend/pkg/enums"
)

// Payment is the immutable ledger entry for a completed cash collection.
// Rows are created exactly once per verified attempt and never updated;
// the unique attempt id makes the commit safe to retry.
type Payment struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AttemptID      uuid.UUID           `gorm:"column:attempt_id;type:uuid;not null;uniqueIndex:ux_payments_attempt_id"`
	TenantID       uuid.UUID           `gorm:"column:tenant_id;type:uuid;not null;index"`
	RetailerID     uuid.UUID           `gorm:"column:retailer_id;type:uuid;not null"`
	RetailerName   string              `gorm:"column:retailer_name;not null"`
	LineWorkerID   uuid.UUID           `gorm:"column:line_worker_id;type:uuid;not null"`
	LineWorkerName string              `gorm:"column:line_worker_name;not null"`
	TotalPaid      decimal.Decimal     `gorm:"column:total_paid;type:numeric(12,2);not null"`
	Method         enums.PaymentMethod `gorm:"column:method;type:payment_method_enum;not null"`
	State          enums.PaymentState  `gorm:"column:state;type:payment_state_enum;not null"`
	InitiatedAt    time.Time           `gorm:"column:initiated_at;not null"`
	OTPSentAt      time.Time           `gorm:"column:otp_sent_at;not null"`
	VerifiedAt     time.Time           `gorm:"column:verified_at;not null"`
	CompletedAt    time.Time           `gorm:"column:completed_at;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
