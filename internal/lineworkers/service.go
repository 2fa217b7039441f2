package lineworkers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
)

// CreateInput carries the fields for a new line worker.
type CreateInput struct {
	Name  string
	Phone string
	Email *string
}

// Page is a cursor-paginated line worker listing.
type Page struct {
	Items      []models.LineWorker
	NextCursor string
}

// Service exposes line worker management scoped to a tenant.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.LineWorker, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.LineWorker, error)
	List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (Page, error)
	SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) (*models.LineWorker, error)
}

type service struct {
	repo *Repository
}

// NewService builds a line worker service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line worker repo is required")
	}
	return &service{repo: repo}, nil
}

// Create validates and inserts a line worker for the tenant.
func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.LineWorker, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line worker name is required")
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line worker phone is required")
	}

	worker := &models.LineWorker{
		TenantID: tenantID,
		Name:     name,
		Phone:    phone,
		Email:    input.Email,
		Active:   true,
	}
	if err := s.repo.Create(ctx, worker); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line worker")
	}
	return worker, nil
}

// Get loads a line worker scoped to the tenant.
func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.LineWorker, error) {
	if tenantID == uuid.Nil || id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id and line worker id are required")
	}
	worker, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "line worker not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line worker")
	}
	return worker, nil
}

// List returns a line worker page for the tenant.
func (s *service) List(ctx context.Context, tenantID uuid.UUID, params pagination.Params) (Page, error) {
	if tenantID == uuid.Nil {
		return Page{}, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	rows, nextCursor, err := s.repo.ListByTenant(ctx, tenantID, params)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list line workers")
	}
	return Page{Items: rows, NextCursor: nextCursor}, nil
}

// SetActive enables or disables a line worker and returns the refreshed row.
func (s *service) SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) (*models.LineWorker, error) {
	if _, err := s.Get(ctx, tenantID, id); err != nil {
		return nil, err
	}
	if err := s.repo.SetActive(ctx, tenantID, id, active); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update line worker")
	}
	return s.repo.FindByIDForTenant(ctx, tenantID, id)
}
