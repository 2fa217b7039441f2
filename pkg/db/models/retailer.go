package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Retailer is a pharmacy/shop that owes money to a tenant and is the subject
// of collection attempts.
type Retailer struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID           uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name               string          `gorm:"column:name;not null"`
	Phone              string          `gorm:"column:phone;not null"`
	Area               *string         `gorm:"column:area"`
	Address            *string         `gorm:"column:address"`
	OutstandingBalance decimal.Decimal `gorm:"column:outstanding_balance;type:numeric(12,2);not null;default:0"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
