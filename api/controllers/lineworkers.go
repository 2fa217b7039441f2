package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sahilkadam/medipay-backend/api/responses"
	"github.com/sahilkadam/medipay-backend/api/validators"
	"github.com/sahilkadam/medipay-backend/internal/lineworkers"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
	"github.com/sahilkadam/medipay-backend/pkg/types"
)

type lineWorkerCreateRequest struct {
	Name  string  `json:"name" validate:"required"`
	Phone string  `json:"phone" validate:"required"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// LineWorkerCreate registers a line worker under the admin's tenant.
func LineWorkerCreate(svc lineworkers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "line worker service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload lineWorkerCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		worker, err := svc.Create(r.Context(), tid, lineworkers.CreateInput{
			Name:  payload.Name,
			Phone: payload.Phone,
			Email: payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, worker)
	}
}

// LineWorkerList returns the tenant's line workers newest first.
func LineWorkerList(svc lineworkers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "line worker service unavailable"))
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

// LineWorkerDetail returns a single line worker scoped to the tenant.
func LineWorkerDetail(svc lineworkers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "line worker service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "lineWorkerId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line worker id"))
			return
		}

		worker, err := svc.Get(r.Context(), tid, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, worker)
	}
}

type lineWorkerActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// LineWorkerSetActive toggles whether the worker can run collections.
func LineWorkerSetActive(svc lineworkers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "line worker service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "lineWorkerId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line worker id"))
			return
		}

		var payload lineWorkerActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		worker, err := svc.SetActive(r.Context(), tid, id, *payload.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, worker)
	}
}
