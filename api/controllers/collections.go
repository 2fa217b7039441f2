package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahilkadam/medipay-backend/api/middleware"
	"github.com/sahilkadam/medipay-backend/api/responses"
	"github.com/sahilkadam/medipay-backend/api/validators"
	"github.com/sahilkadam/medipay-backend/internal/collections"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
)

// attemptResponse is the client view of an attempt. The OTP code never
// leaves the server, so it is not part of this shape.
type attemptResponse struct {
	ID             uuid.UUID       `json:"id"`
	RetailerID     uuid.UUID       `json:"retailer_id"`
	RetailerName   string          `json:"retailer_name"`
	Amount         decimal.Decimal `json:"amount"`
	State          string          `json:"state"`
	VerifyAttempts int             `json:"verify_attempts"`
	InitiatedAt    time.Time       `json:"initiated_at"`
	OTPSentAt      *time.Time      `json:"otp_sent_at,omitempty"`
}

func toAttemptResponse(attempt *collections.Attempt) *attemptResponse {
	if attempt == nil {
		return nil
	}
	return &attemptResponse{
		ID:             attempt.ID,
		RetailerID:     attempt.RetailerID,
		RetailerName:   attempt.RetailerName,
		Amount:         attempt.Amount,
		State:          attempt.State.String(),
		VerifyAttempts: attempt.VerifyAttempts,
		InitiatedAt:    attempt.InitiatedAt,
		OTPSentAt:      attempt.OTPSentAt,
	}
}

func collectionActor(r *http.Request) (collections.Actor, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return collections.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	tenantID := middleware.TenantIDFromContext(r.Context())
	if tenantID == "" {
		return collections.Actor{}, pkgerrors.New(pkgerrors.CodeForbidden, "tenant context missing")
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return collections.Actor{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	tid, err := uuid.Parse(tenantID)
	if err != nil {
		return collections.Actor{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant id")
	}

	return collections.Actor{
		LineWorkerID: uid,
		TenantID:     tid,
		Name:         middleware.ActorNameFromContext(r.Context()),
	}, nil
}

type selectRetailerRequest struct {
	RetailerID string `json:"retailer_id" validate:"required,uuid4"`
}

// CollectionSelectRetailer starts a fresh attempt for the chosen retailer.
func CollectionSelectRetailer(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collections service unavailable"))
			return
		}

		actor, err := collectionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectRetailerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		retailerID, err := uuid.Parse(payload.RetailerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid retailer id"))
			return
		}

		attempt, err := svc.SelectRetailer(r.Context(), actor, retailerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toAttemptResponse(attempt))
	}
}

type enterAmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// CollectionEnterAmount records the cash amount on the live attempt.
func CollectionEnterAmount(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collections service unavailable"))
			return
		}

		actor, err := collectionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload enterAmountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attempt, err := svc.EnterAmount(r.Context(), actor, payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toAttemptResponse(attempt))
	}
}

// CollectionSendOTP dispatches the one OTP an attempt gets.
func CollectionSendOTP(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collections service unavailable"))
			return
		}

		actor, err := collectionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attempt, err := svc.SendOTP(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toAttemptResponse(attempt))
	}
}

type verifyOTPRequest struct {
	Code string `json:"code" validate:"required"`
}

type verifyOTPResponse struct {
	Verified bool             `json:"verified"`
	Attempt  *attemptResponse `json:"attempt,omitempty"`
	Payment  any              `json:"payment,omitempty"`
}

// CollectionVerifyOTP checks the code and, on a match, commits the payment.
// A mismatch is a 200 with verified=false so the worker can retry.
func CollectionVerifyOTP(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collections service unavailable"))
			return
		}

		actor, err := collectionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload verifyOTPRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.VerifyOTP(r.Context(), actor, payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := verifyOTPResponse{Verified: result.Verified}
		if result.Attempt != nil {
			resp.Attempt = toAttemptResponse(result.Attempt)
		}
		if result.Payment != nil {
			resp.Payment = result.Payment
		}

		responses.WriteSuccess(w, resp)
	}
}

// CollectionCancel abandons the live attempt. Safe to repeat.
func CollectionCancel(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collections service unavailable"))
			return
		}

		actor, err := collectionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Cancel(r.Context(), actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

// CollectionCurrent returns the live attempt, or null when idle.
func CollectionCurrent(svc collections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "collections service unavailable"))
			return
		}

		actor, err := collectionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attempt, err := svc.Current(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toAttemptResponse(attempt))
	}
}
