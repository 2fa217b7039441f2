package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
)

// Page is a cursor-paginated payment listing.
type Page struct {
	Items      []models.Payment
	NextCursor string
}

// Stats carries the line worker dashboard aggregates.
type Stats struct {
	TodayTotal      decimal.Decimal
	TodayCount      int64
	Last7DaysTotal  decimal.Decimal
	Last30DaysTotal decimal.Decimal
}

// Service exposes read paths over the payments ledger.
type Service interface {
	History(ctx context.Context, filter ListFilter, params pagination.Params) (Page, error)
	StatsForLineWorker(ctx context.Context, lineWorkerID uuid.UUID, now time.Time) (Stats, error)
}

type service struct {
	repo *Repository
}

// NewService builds a payments service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payments repo is required")
	}
	return &service{repo: repo}, nil
}

// History returns the newest-first payment page matching the filter.
func (s *service) History(ctx context.Context, filter ListFilter, params pagination.Params) (Page, error) {
	if filter.TenantID == uuid.Nil {
		return Page{}, pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	rows, nextCursor, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return Page{Items: rows, NextCursor: nextCursor}, nil
}

// StatsForLineWorker aggregates today / 7 day / 30 day totals.
func (s *service) StatsForLineWorker(ctx context.Context, lineWorkerID uuid.UUID, now time.Time) (Stats, error) {
	if lineWorkerID == uuid.Nil {
		return Stats{}, pkgerrors.New(pkgerrors.CodeValidation, "line worker id is required")
	}
	if now.IsZero() {
		now = time.Now()
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todayTotal, todayCount, err := s.repo.AggregateSince(ctx, lineWorkerID, startOfDay)
	if err != nil {
		return Stats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate today")
	}
	weekTotal, _, err := s.repo.AggregateSince(ctx, lineWorkerID, now.AddDate(0, 0, -7))
	if err != nil {
		return Stats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate last 7 days")
	}
	monthTotal, _, err := s.repo.AggregateSince(ctx, lineWorkerID, now.AddDate(0, 0, -30))
	if err != nil {
		return Stats{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate last 30 days")
	}

	return Stats{
		TodayTotal:      todayTotal,
		TodayCount:      todayCount,
		Last7DaysTotal:  weekTotal,
		Last30DaysTotal: monthTotal,
	}, nil
}
