package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahilkadam/medipay-backend/api/middleware"
	"github.com/sahilkadam/medipay-backend/api/responses"
	"github.com/sahilkadam/medipay-backend/api/validators"
	"github.com/sahilkadam/medipay-backend/internal/retailers"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
	"github.com/sahilkadam/medipay-backend/pkg/pagination"
	"github.com/sahilkadam/medipay-backend/pkg/types"
)

func tenantIDFromRequest(r *http.Request) (uuid.UUID, error) {
	tenantID := middleware.TenantIDFromContext(r.Context())
	if tenantID == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant context missing")
	}
	tid, err := uuid.Parse(tenantID)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant id")
	}
	return tid, nil
}

func pageParamsFromRequest(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}

type retailerCreateRequest struct {
	Name               string           `json:"name" validate:"required"`
	Phone              string           `json:"phone" validate:"required"`
	Area               *string          `json:"area,omitempty"`
	Address            *string          `json:"address,omitempty"`
	OutstandingBalance *decimal.Decimal `json:"outstanding_balance,omitempty"`
}

// RetailerCreate inserts a retailer for the admin's tenant.
func RetailerCreate(svc retailers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload retailerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := retailers.CreateInput{
			Name:    payload.Name,
			Phone:   payload.Phone,
			Area:    payload.Area,
			Address: payload.Address,
		}
		if payload.OutstandingBalance != nil {
			input.OutstandingBalance = *payload.OutstandingBalance
		}

		retailer, err := svc.Create(r.Context(), tid, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, retailer)
	}
}

// RetailerList returns the tenant's retailers newest first.
func RetailerList(svc retailers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParamsFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), tid, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.PageEnvelope{Items: page.Items, NextCursor: page.NextCursor})
	}
}

// RetailerDetail returns a single retailer scoped to the tenant.
func RetailerDetail(svc retailers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "retailerId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid retailer id"))
			return
		}

		retailer, err := svc.Get(r.Context(), tid, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, retailer)
	}
}

type retailerUpdateRequest struct {
	Name               *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Phone              *string          `json:"phone,omitempty" validate:"omitempty,min=1"`
	Area               *string          `json:"area,omitempty"`
	Address            *string          `json:"address,omitempty"`
	OutstandingBalance *decimal.Decimal `json:"outstanding_balance,omitempty"`
}

// RetailerUpdate adjusts the mutable retailer fields.
func RetailerUpdate(svc retailers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "retailer service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "retailerId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid retailer id"))
			return
		}

		var payload retailerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		retailer, err := svc.Update(r.Context(), tid, id, retailers.UpdateInput{
			Name:               payload.Name,
			Phone:              payload.Phone,
			Area:               payload.Area,
			Address:            payload.Address,
			OutstandingBalance: payload.OutstandingBalance,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, retailer)
	}
}
