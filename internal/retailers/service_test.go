package retailers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
)

func setupRetailersService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	retailersTable := `
CREATE TABLE IF NOT EXISTS retailers (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  area TEXT,
  address TEXT,
  outstanding_balance NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(retailersTable).Error)

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func seedRetailer(t *testing.T, db *gorm.DB, tenantID uuid.UUID) *models.Retailer {
	t.Helper()

	retailer := &models.Retailer{
		ID:                 uuid.New(),
		TenantID:           tenantID,
		Name:               "Gupta Medical Store",
		Phone:              "9876543210",
		OutstandingBalance: decimal.NewFromInt(5000),
	}
	require.NoError(t, db.Create(retailer).Error)
	return retailer
}

func strPtr(s string) *string { return &s }

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := setupRetailersService(t)
	tenantID := uuid.New()

	tests := []struct {
		name     string
		tenantID uuid.UUID
		input    CreateInput
	}{
		{
			name:     "missing tenant",
			tenantID: uuid.Nil,
			input:    CreateInput{Name: "Gupta Medical Store", Phone: "9876543210"},
		},
		{
			name:     "blank name",
			tenantID: tenantID,
			input:    CreateInput{Name: "   ", Phone: "9876543210"},
		},
		{
			name:     "blank phone",
			tenantID: tenantID,
			input:    CreateInput{Name: "Gupta Medical Store", Phone: " "},
		},
		{
			name:     "negative balance",
			tenantID: tenantID,
			input: CreateInput{
				Name:               "Gupta Medical Store",
				Phone:              "9876543210",
				OutstandingBalance: decimal.NewFromInt(-100),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.tenantID, tc.input)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestServiceCreatePersistsOptionalArea(t *testing.T) {
	t.Run("area set", func(t *testing.T) {
		svc, _ := setupRetailersService(t)
		tenantID := uuid.New()

		created, err := svc.Create(context.Background(), tenantID, CreateInput{
			Name:    "  Sharma Pharmacy ",
			Phone:   "9876500000",
			Area:    strPtr("Andheri East"),
			Address: strPtr("Shop 4, Station Road"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Sharma Pharmacy", created.Name)
		require.NotNil(t, created.Area)
		assert.Equal(t, "Andheri East", *created.Area)

		page, err := svc.List(context.Background(), tenantID, pagination.Params{Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.NotNil(t, page.Items[0].Area)
		assert.Equal(t, "Andheri East", *page.Items[0].Area)
	})

	t.Run("area omitted", func(t *testing.T) {
		svc, _ := setupRetailersService(t)
		tenantID := uuid.New()

		created, err := svc.Create(context.Background(), tenantID, CreateInput{
			Name:  "Gupta Medical Store",
			Phone: "9876543210",
		})
		require.NoError(t, err)
		assert.Nil(t, created.Area)

		page, err := svc.List(context.Background(), tenantID, pagination.Params{Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Nil(t, page.Items[0].Area)
	})
}

func TestServiceUpdate(t *testing.T) {
	svc, db := setupRetailersService(t)
	tenantID := uuid.New()
	seeded := seedRetailer(t, db, tenantID)

	t.Run("applies area and balance", func(t *testing.T) {
		balance := decimal.NewFromInt(2500)
		updated, err := svc.Update(context.Background(), tenantID, seeded.ID, UpdateInput{
			Area:               strPtr("Borivali West"),
			OutstandingBalance: &balance,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Area)
		assert.Equal(t, "Borivali West", *updated.Area)
		assert.True(t, updated.OutstandingBalance.Equal(balance))
		// Untouched fields keep their values.
		assert.Equal(t, "Gupta Medical Store", updated.Name)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := svc.Update(context.Background(), tenantID, seeded.ID, UpdateInput{Name: strPtr("  ")})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("rejects negative balance", func(t *testing.T) {
		negative := decimal.NewFromInt(-1)
		_, err := svc.Update(context.Background(), tenantID, seeded.ID, UpdateInput{OutstandingBalance: &negative})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("scoped to tenant", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.New(), seeded.ID, UpdateInput{Name: strPtr("Other")})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	})
}
