package tenants

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
)

// UpdateProfileInput carries the editable tenant fields.
type UpdateProfileInput struct {
	Name       string
	AdminPhone *string
	AdminEmail *string
	Address    *string
	GSTNumber  *string
}

// Service exposes tenant profile operations.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.Tenant, error)
}

type service struct {
	repo *Repository
}

// NewService builds a tenant service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant repo is required")
	}
	return &service{repo: repo}, nil
}

// Get loads a tenant by id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}
	return tenant, nil
}

// UpdateProfile applies profile edits and returns the refreshed row.
func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.Tenant, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant name is required")
	}
	tenant.Name = name
	if input.AdminPhone != nil {
		phone := strings.TrimSpace(*input.AdminPhone)
		if phone == "" {
			tenant.AdminPhone = nil
		} else {
			tenant.AdminPhone = &phone
		}
	}
	if input.AdminEmail != nil {
		tenant.AdminEmail = input.AdminEmail
	}
	if input.Address != nil {
		tenant.Address = input.Address
	}
	if input.GSTNumber != nil {
		tenant.GSTNumber = input.GSTNumber
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tenant")
	}
	return s.repo.FindByID(ctx, id)
}
