package controllers

import (
	"net/http"

	"github.com/sahilkadam/medipay-backend/api/responses"
	"github.com/sahilkadam/medipay-backend/api/validators"
	"github.com/sahilkadam/medipay-backend/internal/tenants"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
)

// TenantProfile returns the admin's wholesaler profile.
func TenantProfile(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.Get(r.Context(), tid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenant)
	}
}

type tenantUpdateRequest struct {
	Name       string  `json:"name" validate:"required"`
	AdminPhone *string `json:"admin_phone,omitempty"`
	AdminEmail *string `json:"admin_email,omitempty" validate:"omitempty,email"`
	Address    *string `json:"address,omitempty"`
	GSTNumber  *string `json:"gst_number,omitempty"`
}

// TenantUpdate adjusts the mutable wholesaler fields. An empty admin_phone
// clears the confirmation number.
func TenantUpdate(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant service unavailable"))
			return
		}

		tid, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tenantUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.UpdateProfile(r.Context(), tid, tenants.UpdateProfileInput{
			Name:       payload.Name,
			AdminPhone: payload.AdminPhone,
			AdminEmail: payload.AdminEmail,
			Address:    payload.Address,
			GSTNumber:  payload.GSTNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tenant)
	}
}
