package lineworkers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
)

// Repository encapsulates line worker persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a line worker repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a line worker row.
func (r *Repository) Create(ctx context.Context, worker *models.LineWorker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

// FindByID loads a line worker by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.LineWorker, error) {
	var worker models.LineWorker
	if err := r.db.WithContext(ctx).First(&worker, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

// FindByIDForTenant loads a line worker scoped to a tenant.
func (r *Repository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*models.LineWorker, error) {
	var worker models.LineWorker
	err := r.db.WithContext(ctx).
		First(&worker, "id = ? AND tenant_id = ?", id, tenantID).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

// ListByTenant returns a cursor-paginated line worker page for the tenant.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, params pagination.Params) ([]models.LineWorker, string, error) {
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

	var rows []models.LineWorker
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

// SetActive flips the active flag.
func (r *Repository) SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.LineWorker{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("active", active).Error
}
