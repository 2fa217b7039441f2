package lineworkers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
)

func setupLineWorkersService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	workersTable := `
CREATE TABLE IF NOT EXISTS line_workers (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT,
  active BOOLEAN NOT NULL DEFAULT TRUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(workersTable).Error)

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func seedLineWorker(t *testing.T, db *gorm.DB, tenantID uuid.UUID) *models.LineWorker {
	t.Helper()

	worker := &models.LineWorker{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Ravi",
		Phone:    "9812345670",
		Active:   true,
	}
	require.NoError(t, db.Create(worker).Error)
	return worker
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := setupLineWorkersService(t)
	tenantID := uuid.New()

	tests := []struct {
		name     string
		tenantID uuid.UUID
		input    CreateInput
	}{
		{name: "missing tenant", tenantID: uuid.Nil, input: CreateInput{Name: "Ravi", Phone: "9812345670"}},
		{name: "blank name", tenantID: tenantID, input: CreateInput{Name: " ", Phone: "9812345670"}},
		{name: "blank phone", tenantID: tenantID, input: CreateInput{Name: "Ravi", Phone: "  "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.tenantID, tc.input)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestServiceCreateStartsActive(t *testing.T) {
	svc, _ := setupLineWorkersService(t)

	worker, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Name:  "  Ravi ",
		Phone: "9812345670",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", worker.Name)
	assert.True(t, worker.Active)
}

func TestServiceSetActive(t *testing.T) {
	svc, db := setupLineWorkersService(t)
	tenantID := uuid.New()
	seeded := seedLineWorker(t, db, tenantID)

	disabled, err := svc.SetActive(context.Background(), tenantID, seeded.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.Active)

	enabled, err := svc.SetActive(context.Background(), tenantID, seeded.ID, true)
	require.NoError(t, err)
	assert.True(t, enabled.Active)

	_, err = svc.SetActive(context.Background(), uuid.New(), seeded.ID, false)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
