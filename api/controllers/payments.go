package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sahilkadam/medipay-backend/api/middleware"
	"github.com/sahilkadam/medipay-backend/api/responses"
	"github.com/sahilkadam/medipay-backend/internal/payments"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
	"github.com/sahilkadam/medipay-backend/pkg/types"
)

// PaymentHistory returns the tenant-wide ledger, optionally filtered by
// line worker or retailer.
func PaymentHistory(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := payments.ListFilter{TenantID: tid}

		if raw := strings.TrimSpace(r.URL.Query().Get("line_worker_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line worker id"))
				return
			}
			filter.LineWorkerID = &id
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("retailer_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid retailer id"))
				return
			}
			filter.RetailerID = &id
		}

		params, err := pageParamsFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.History(r.Context(), filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.PageEnvelope{Items: page.Items, NextCursor: page.NextCursor})
	}
}

// WorkerPaymentHistory returns the authenticated line worker's own payments.
func WorkerPaymentHistory(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		uid, err := uuid.Parse(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		params, err := pageParamsFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.History(r.Context(), payments.ListFilter{TenantID: tid, LineWorkerID: &uid}, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.PageEnvelope{Items: page.Items, NextCursor: page.NextCursor})
	}
}

type workerStatsResponse struct {
	TodayTotal      string `json:"today_total"`
	TodayCount      int64  `json:"today_count"`
	Last7DaysTotal  string `json:"last_7_days_total"`
	Last30DaysTotal string `json:"last_30_days_total"`
}

// WorkerPaymentStats returns the line worker dashboard aggregates.
func WorkerPaymentStats(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		uid, err := uuid.Parse(userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		stats, err := svc.StatsForLineWorker(r.Context(), uid, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, workerStatsResponse{
			TodayTotal:      stats.TodayTotal.String(),
			TodayCount:      stats.TodayCount,
			Last7DaysTotal:  stats.Last7DaysTotal.String(),
			Last30DaysTotal: stats.Last30DaysTotal.String(),
		})
	}
}
