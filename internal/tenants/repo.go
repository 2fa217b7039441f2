package tenants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
)

// Repository encapsulates tenant persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tenant repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a tenant by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Update persists the mutable profile fields.
func (r *Repository) Update(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("id = ?", tenant.ID).
		Updates(map[string]any{
			"name":        tenant.Name,
			"admin_phone": tenant.AdminPhone,
			"admin_email": tenant.AdminEmail,
			"address":     tenant.Address,
			"gst_number":  tenant.GSTNumber,
		}).Error
}
