package retailers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
)

// Repository encapsulates retailer persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a retailer repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a retailer row.
func (r *Repository) Create(ctx context.Context, retailer *models.Retailer) error {
	return r.db.WithContext(ctx).Create(retailer).Error
}

// FindByID loads a retailer by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Retailer, error) {
	var retailer models.Retailer
	if err := r.db.WithContext(ctx).First(&retailer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &retailer, nil
}

// FindByIDForTenant loads a retailer scoped to a tenant.
func (r *Repository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*models.Retailer, error) {
	var retailer models.Retailer
	err := r.db.WithContext(ctx).
		First(&retailer, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		return nil, err
	}
	return &retailer, nil
}

// ListByTenant returns a cursor-paginated retailer page for the tenant.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, params pagination.Params) ([]models.Retailer, string, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var rows []models.Retailer
	err = query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return rows, nextCursor, nil
}

// Update persists the mutable retailer fields.
func (r *Repository) Update(ctx context.Context, retailer *models.Retailer) error {
	return r.db.WithContext(ctx).
		Model(&models.Retailer{}).
		Where("id = ? AND tenant_id = ?", retailer.ID, retailer.TenantID).
		Updates(map[string]any{
			"name":                retailer.Name,
			"phone":               retailer.Phone,
			"area":                retailer.Area,
			"address":             retailer.Address,
			"outstanding_balance": retailer.OutstandingBalance,
		}).Error
}
