package tenants

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	"github.com/sahilkadam/medipay-backend/pkg/enums"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
)

func setupTenantsService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	tenantsTable := `
CREATE TABLE IF NOT EXISTS tenants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  admin_phone TEXT,
  admin_email TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  address TEXT,
  gst_number TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(tenantsTable).Error)

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func seedTenant(t *testing.T, db *gorm.DB) *models.Tenant {
	t.Helper()

	phone := "9800011122"
	tenant := &models.Tenant{
		ID:         uuid.New(),
		Name:       "MediCorp Distributors",
		AdminPhone: &phone,
		Status:     enums.TenantStatusApproved,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func TestServiceGetNotFound(t *testing.T) {
	svc, _ := setupTenantsService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceUpdateProfileRequiresName(t *testing.T) {
	svc, db := setupTenantsService(t)
	seeded := seedTenant(t, db)

	_, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateProfileInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceUpdateProfileAdminPhone(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{name: "set trimmed", input: strPtr("  9899900011 "), want: strPtr("9899900011")},
		{name: "empty clears", input: strPtr(""), want: nil},
		{name: "whitespace clears", input: strPtr("   "), want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, db := setupTenantsService(t)
			seeded := seedTenant(t, db)

			updated, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateProfileInput{
				Name:       seeded.Name,
				AdminPhone: tc.input,
			})
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, updated.AdminPhone)
			} else {
				require.NotNil(t, updated.AdminPhone)
				assert.Equal(t, *tc.want, *updated.AdminPhone)
			}
		})
	}
}

func TestServiceUpdateProfileKeepsPhoneWhenOmitted(t *testing.T) {
	svc, db := setupTenantsService(t)
	seeded := seedTenant(t, db)

	updated, err := svc.UpdateProfile(context.Background(), seeded.ID, UpdateProfileInput{
		Name:    "MediCorp Distributors Pvt Ltd",
		Address: strPtr("12 Link Road, Mumbai"),
	})
	require.NoError(t, err)
	assert.Equal(t, "MediCorp Distributors Pvt Ltd", updated.Name)
	require.NotNil(t, updated.AdminPhone)
	assert.Equal(t, "9800011122", *updated.AdminPhone)
}

func strPtr(s string) *string { return &s }
