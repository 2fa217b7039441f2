package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahilkadam/medipay-backend/pkg/enums"
)

// Tenant represents a wholesaler account, the multi-tenancy boundary for all data.
type Tenant struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string             `gorm:"column:name;not null"`
	AdminPhone *string            `gorm:"column:admin_phone"`
	AdminEmail *string            `gorm:"column:admin_email"`
	Status     enums.TenantStatus `gorm:"column:status;type:tenant_status_enum;not null;default:'pending'"`
	Address    *string            `gorm:"column:address"`
	GSTNumber  *string            `gorm:"column:gst_number"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
