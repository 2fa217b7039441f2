package payments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
)

// Repository encapsulates the append-only payments ledger. There is no update
// or delete path on purpose.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a payments repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx inserts the payment inside the caller's transaction.
func (r *Repository) CreateTx(tx *gorm.DB, payment *models.Payment) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Create(payment).Error
}

// FindByAttemptID loads the payment committed for a collection attempt.
func (r *Repository) FindByAttemptID(ctx context.Context, attemptID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, "attempt_id = ?", attemptID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByID loads a payment by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListFilter narrows the history listing.
type ListFilter struct {
	TenantID     uuid.UUID
	LineWorkerID *uuid.UUID
	RetailerID   *uuid.UUID
}

// List returns a cursor-paginated payment page, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Payment, string, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", filter.TenantID)
	if filter.LineWorkerID != nil {
		query = query.Where("line_worker_id = ?", *filter.LineWorkerID)
	}
	if filter.RetailerID != nil {
		query = query.Where("retailer_id = ?", *filter.RetailerID)
	}
	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var rows []models.Payment
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

// AggregateSince sums completed payments for a line worker from the given time.
func (r *Repository) AggregateSince(ctx context.Context, lineWorkerID uuid.UUID, since time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(total_paid), 0) AS total, COUNT(*) AS count").
		Where("line_worker_id = ? AND completed_at >= ?", lineWorkerID, since).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Total, row.Count, nil
}
