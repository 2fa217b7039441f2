package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	"github.com/sahilkadam/medipay-backend/pkg/enums"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
)

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	payments := `
CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  attempt_id TEXT NOT NULL UNIQUE,
  tenant_id TEXT NOT NULL,
  retailer_id TEXT NOT NULL,
  retailer_name TEXT NOT NULL,
  line_worker_id TEXT NOT NULL,
  line_worker_name TEXT NOT NULL,
  total_paid NUMERIC NOT NULL,
  method TEXT NOT NULL,
  state TEXT NOT NULL,
  initiated_at DATETIME NOT NULL,
  otp_sent_at DATETIME NOT NULL,
  verified_at DATETIME NOT NULL,
  completed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(payments).Error)
	return db
}

func createPayment(t *testing.T, db *gorm.DB, tenantID, lineWorkerID, retailerID uuid.UUID, amount string, completed time.Time) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		ID:             uuid.New(),
		AttemptID:      uuid.New(),
		TenantID:       tenantID,
		RetailerID:     retailerID,
		RetailerName:   "Gupta Medical Store",
		LineWorkerID:   lineWorkerID,
		LineWorkerName: "Ravi",
		TotalPaid:      decimal.RequireFromString(amount),
		Method:         enums.PaymentMethodCash,
		State:          enums.PaymentStateCompleted,
		InitiatedAt:    completed.Add(-5 * time.Minute),
		OTPSentAt:      completed.Add(-2 * time.Minute),
		VerifiedAt:     completed,
		CompletedAt:    completed,
		CreatedAt:      completed,
		UpdatedAt:      completed,
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func TestRepositoryList_pagination(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRepository(db)

	tenantID := uuid.New()
	workerID := uuid.New()
	retailerID := uuid.New()

	now := time.Now().UTC()
	older := createPayment(t, db, tenantID, workerID, retailerID, "1500.00", now.Add(-time.Hour))
	newer := createPayment(t, db, tenantID, workerID, retailerID, "2500.00", now)

	page, cursor, err := repo.List(context.Background(), ListFilter{TenantID: tenantID}, pagination.Params{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, newer.ID, page[0].ID)
	assert.NotEmpty(t, cursor)

	second, cursor, err := repo.List(context.Background(), ListFilter{TenantID: tenantID}, pagination.Params{Limit: 1, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, older.ID, second[0].ID)
	assert.Empty(t, cursor)
}

func TestRepositoryList_filters(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRepository(db)

	tenantID := uuid.New()
	workerA := uuid.New()
	workerB := uuid.New()
	retailerID := uuid.New()

	now := time.Now().UTC()
	mine := createPayment(t, db, tenantID, workerA, retailerID, "900.00", now)
	createPayment(t, db, tenantID, workerB, retailerID, "400.00", now.Add(-time.Minute))
	createPayment(t, db, uuid.New(), workerA, retailerID, "100.00", now)

	page, cursor, err := repo.List(context.Background(), ListFilter{
		TenantID:     tenantID,
		LineWorkerID: &workerA,
	}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, mine.ID, page[0].ID)
	assert.Empty(t, cursor)
}

func TestRepositoryAggregateSince(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRepository(db)

	tenantID := uuid.New()
	workerID := uuid.New()
	retailerID := uuid.New()

	now := time.Now().UTC()
	createPayment(t, db, tenantID, workerID, retailerID, "1000.00", now.Add(-time.Hour))
	createPayment(t, db, tenantID, workerID, retailerID, "500.50", now.Add(-10*time.Minute))
	// outside the window
	createPayment(t, db, tenantID, workerID, retailerID, "9999.00", now.Add(-48*time.Hour))

	total, count, err := repo.AggregateSince(context.Background(), workerID, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.True(t, total.Equal(decimal.RequireFromString("1500.50")), "unexpected total %s", total)
}

func TestRepositoryFindByAttemptID(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRepository(db)

	payment := createPayment(t, db, uuid.New(), uuid.New(), uuid.New(), "750.00", time.Now().UTC())

	found, err := repo.FindByAttemptID(context.Background(), payment.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, found.ID)
	assert.True(t, found.TotalPaid.Equal(payment.TotalPaid))
}
