package retailers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
)

// CreateInput carries the fields for a new retailer.
type CreateInput struct {
	Name               string
	Phone              string
	Area               *string
	Address            *string
	OutstandingBalance decimal.Decimal
}

// UpdateInput carries the editable retailer fields. Nil means unchanged.
type UpdateInput struct {
	Name               *string
	Phone              *string
	Area               *string
	Address            *string
	OutstandingBalance *decimal.Decimal
}

// Page is a cursor-paginated retailer listing.
type Page struct {
	Items      []models.Retailer
	NextCursor string
}

// Service exposes retailer management scoped to a tenant.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Retailer, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Retailer, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (Page, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.Retailer, error)
}

type service struct {
	repo *Repository
}

// NewService builds a retailer service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer repo is required")
	}
	return &service{repo: repo}, nil
}

// Create validates and inserts a retailer for the tenant.
func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Retailer, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer name is required")
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer phone is required")
	}
	if input.OutstandingBalance.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "outstanding balance cannot be negative")
	}

	retailer := &models.Retailer{
		TenantID:           tenantID,
		Name:               name,
		Phone:              phone,
		Area:               input.Area,
		Address:            input.Address,
		OutstandingBalance: input.OutstandingBalance,
	}
	if err := s.repo.Create(ctx, retailer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create retailer")
	}
	return retailer, nil
}

// Get loads a retailer scoped to the tenant.
func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Retailer, error) {
	if tenantID == uuid.Nil || id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id and retailer id are required")
	}
	retailer, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "retailer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load retailer")
	}
	return retailer, nil
}

// List returns a retailer page for the tenant.
func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (Page, error) {
	if tenantID == uuid.Nil {
		return Page{}, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	rows, nextCursor, err := s.repo.ListByTenant(ctx, tenantID, params)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list retailers")
	}
	return Page{Items: rows, NextCursor: nextCursor}, nil
}

// Update applies edits to an existing retailer.
func (s *service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.Retailer, error) {
	retailer, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer name cannot be empty")
		}
		retailer.Name = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer phone cannot be empty")
		}
		retailer.Phone = phone
	}
	if input.Area != nil {
		retailer.Area = input.Area
	}
	if input.Address != nil {
		retailer.Address = input.Address
	}
	if input.OutstandingBalance != nil {
		if input.OutstandingBalance.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "outstanding balance cannot be negative")
		}
		retailer.OutstandingBalance = *input.OutstandingBalance
	}

	if err := s.repo.Update(ctx, retailer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update retailer")
	}
	return s.repo.FindByIDForTenant(ctx, tenantID, id)
}
