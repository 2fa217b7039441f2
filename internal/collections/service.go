package collections

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sahilkadam/medipay-backend/internal/otp"
	dbpkg "github.com/sahilkadam/medipay-backend/pkg/db"
	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	"github.com/sahilkadam/medipay-backend/pkg/enums"
	pkgerrors "github.com/sahilkadam/medipay-backend/pkg/errors"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
	"github.com/sahilkadam/medipay-backend/pkg/metrics"
	outboxpkg "github.com/sahilkadam/medipay-backend/pkg/outbox"
	"github.com/sahilkadam/medipay-backend/pkg/outbox/payloads"
	"github.com/sahilkadam/medipay-backend/pkg/sms"
)

// Actor identifies the authenticated line worker driving the flow.
type Actor struct {
	LineWorkerID uuid.UUID
	TenantID     uuid.UUID
	Name         string
}

// VerifyResult reports the outcome of a verification call. A mismatch is a
// normal result, not an error: the attempt stays live and the worker retries.
type VerifyResult struct {
	Verified bool
	Attempt  *Attempt
	Payment  *models.Payment
}

// RetailerLookup resolves retailers scoped to a tenant.
type RetailerLookup interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*models.Retailer, error)
}

// TenantLookup resolves tenants for wholesaler naming.
type TenantLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

// Ledger is the append-only payment sink plus the committed-row lookup used
// for idempotent retries.
type Ledger interface {
	CreateTx(tx *gorm.DB, payment *models.Payment) error
	FindByAttemptID(ctx context.Context, attemptID uuid.UUID) (*models.Payment, error)
}

// EventEmitter queues domain events inside the commit transaction.
type EventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outboxpkg.DomainEvent) error
}

// TxRunner wraps a function in a DB transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Config carries the attempt hardening knobs. Zero values for ExpiryWindow
// and MaxVerifyAttempts disable the respective check.
type Config struct {
	ExpiryWindow      time.Duration
	MaxVerifyAttempts int
}

// ServiceParams groups dependencies for the collections service.
type ServiceParams struct {
	Store        AttemptStore
	RetailerRepo RetailerLookup
	TenantRepo   TenantLookup
	Ledger       Ledger
	Outbox       EventEmitter
	Tx           TxRunner
	Messenger    sms.Sender
	Metrics      *metrics.CollectionMetrics
	Logger       *logger.Logger
	Config       Config
	Now          func() time.Time
}

// Service drives the OTP-gated cash collection flow for line workers.
type Service interface {
	SelectRetailer(ctx context.Context, actor Actor, retailerID uuid.UUID) (*Attempt, error)
	EnterAmount(ctx context.Context, actor Actor, amount decimal.Decimal) (*Attempt, error)
	SendOTP(ctx context.Context, actor Actor) (*Attempt, error)
	VerifyOTP(ctx context.Context, actor Actor, code string) (VerifyResult, error)
	Cancel(ctx context.Context, actor Actor) error
	Current(ctx context.Context, actor Actor) (*Attempt, error)
}

type service struct {
	store        AttemptStore
	retailerRepo RetailerLookup
	tenantRepo   TenantLookup
	ledger       Ledger
	outbox       EventEmitter
	tx           TxRunner
	messenger    sms.Sender
	metrics      *metrics.CollectionMetrics
	logg         *logger.Logger
	cfg          Config
	now          func() time.Time
}

// NewService builds a collections service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attempt store is required")
	}
	if params.RetailerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer repo is required")
	}
	if params.TenantRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant repo is required")
	}
	if params.Ledger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payments ledger is required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "outbox service is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Messenger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "messenger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:        params.Store,
		retailerRepo: params.RetailerRepo,
		tenantRepo:   params.TenantRepo,
		ledger:       params.Ledger,
		outbox:       params.Outbox,
		tx:           params.Tx,
		messenger:    params.Messenger,
		metrics:      params.Metrics,
		logg:         params.Logger,
		cfg:          params.Config,
		now:          now,
	}, nil
}

// SelectRetailer starts a fresh attempt, replacing any prior non-terminal one.
func (s *service) SelectRetailer(ctx context.Context, actor Actor, retailerID uuid.UUID) (*Attempt, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if retailerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "retailer id is required")
	}

	retailer, err := s.retailerRepo.FindByIDForTenant(ctx, actor.TenantID, retailerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "retailer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load retailer")
	}

	attempt := &Attempt{
		ID:             uuid.New(),
		TenantID:       actor.TenantID,
		LineWorkerID:   actor.LineWorkerID,
		LineWorkerName: actor.Name,
		RetailerID:     retailer.ID,
		RetailerName:   retailer.Name,
		RetailerPhone:  retailer.Phone,
		Amount:         decimal.Zero,
		State:          enums.AttemptStateAmountEntered,
		InitiatedAt:    s.now(),
	}
	if err := s.store.Save(ctx, attempt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save attempt")
	}
	return attempt, nil
}

// EnterAmount records the amount to collect. The amount locks once the OTP
// is sent.
func (s *service) EnterAmount(ctx context.Context, actor Actor, amount decimal.Decimal) (*Attempt, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}

	attempt, err := s.loadAttempt(ctx, actor)
	if err != nil {
		return nil, err
	}
	if attempt.CodeIssued() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "amount is locked after otp send")
	}
	if attempt.State != enums.AttemptStateAmountEntered {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "attempt is not accepting an amount")
	}

	attempt.Amount = amount
	if err := s.store.Save(ctx, attempt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save attempt")
	}
	return attempt, nil
}

// SendOTP issues the single code for the attempt and dispatches it to the
// retailer's phone.
func (s *service) SendOTP(ctx context.Context, actor Actor) (*Attempt, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	attempt, err := s.loadAttempt(ctx, actor)
	if err != nil {
		return nil, err
	}
	if attempt.CodeIssued() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "otp already sent for this attempt")
	}
	if !attempt.HasPositiveAmount() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be entered before sending otp")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, attempt.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "tenant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
	}
	if tenant.Status != enums.TenantStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant is not approved for collections")
	}

	code, err := otp.Generate()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}

	message := otp.PaymentOTPMessage(code, attempt.Amount, attempt.LineWorkerName, tenant.Name)
	if err := s.messenger.Send(ctx, attempt.RetailerPhone, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send otp sms")
	}

	sentAt := s.now()
	attempt.Code = code
	attempt.OTPSentAt = &sentAt
	attempt.State = enums.AttemptStateOTPSent
	if err := s.store.Save(ctx, attempt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save attempt")
	}

	s.metrics.IncOTPSent("sms")
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"attempt_id":  attempt.ID.String(),
			"retailer_id": attempt.RetailerID.String(),
		})
		s.logg.Info(logCtx, "collection otp sent")
	}
	return attempt, nil
}

// VerifyOTP compares the provided code and, on a match, commits the payment.
func (s *service) VerifyOTP(ctx context.Context, actor Actor, code string) (VerifyResult, error) {
	if err := validateActor(actor); err != nil {
		return VerifyResult{}, err
	}
	attempt, err := s.loadAttempt(ctx, actor)
	if err != nil {
		return VerifyResult{}, err
	}
	if attempt.State != enums.AttemptStateOTPSent {
		return VerifyResult{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no otp pending verification")
	}

	now := s.now()
	if s.cfg.ExpiryWindow > 0 && attempt.OTPSentAt != nil && now.Sub(*attempt.OTPSentAt) > s.cfg.ExpiryWindow {
		_ = s.store.Delete(ctx, actor.LineWorkerID)
		s.metrics.IncVerify("expired")
		return VerifyResult{}, pkgerrors.New(pkgerrors.CodeStateConflict, "otp expired, start a new attempt")
	}

	attempt.VerifyAttempts++

	if !otp.Verify(attempt.Code, code) {
		if s.cfg.MaxVerifyAttempts > 0 && attempt.VerifyAttempts >= s.cfg.MaxVerifyAttempts {
			_ = s.store.Delete(ctx, actor.LineWorkerID)
			s.metrics.IncVerify("exhausted")
			return VerifyResult{}, pkgerrors.New(pkgerrors.CodeStateConflict, "verification attempts exhausted, start a new attempt")
		}
		if err := s.store.Save(ctx, attempt); err != nil {
			return VerifyResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save attempt")
		}
		s.metrics.IncVerify("mismatch")
		return VerifyResult{Verified: false, Attempt: attempt}, nil
	}

	payment, err := s.commit(ctx, attempt, now)
	if err != nil {
		// Attempt retained so the worker can retry the transition.
		return VerifyResult{}, err
	}

	if err := s.store.Delete(ctx, actor.LineWorkerID); err != nil && s.logg != nil {
		s.logg.Error(ctx, "failed to discard committed attempt", err)
	}

	attempt.State = enums.AttemptStateVerified
	s.metrics.IncVerify("match")
	s.metrics.IncCommitted()
	return VerifyResult{Verified: true, Attempt: attempt, Payment: payment}, nil
}

// commit writes the payment and queues the confirmation event in one
// transaction. A unique violation on attempt_id means a previous commit
// already landed, so the retry resolves to the existing row.
func (s *service) commit(ctx context.Context, attempt *Attempt, verifiedAt time.Time) (*models.Payment, error) {
	if attempt.OTPSentAt == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "attempt has no otp timeline")
	}

	payment := &models.Payment{
		AttemptID:      attempt.ID,
		TenantID:       attempt.TenantID,
		RetailerID:     attempt.RetailerID,
		RetailerName:   attempt.RetailerName,
		LineWorkerID:   attempt.LineWorkerID,
		LineWorkerName: attempt.LineWorkerName,
		TotalPaid:      attempt.Amount,
		Method:         enums.PaymentMethodCash,
		State:          enums.PaymentStateCompleted,
		InitiatedAt:    attempt.InitiatedAt,
		OTPSentAt:      *attempt.OTPSentAt,
		VerifiedAt:     verifiedAt,
		CompletedAt:    verifiedAt,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledger.CreateTx(tx, payment); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outboxpkg.DomainEvent{
			EventType:     enums.EventPaymentCompleted,
			AggregateType: enums.AggregatePayment,
			AggregateID:   payment.ID,
			Actor: &outboxpkg.ActorRef{
				LineWorkerID: attempt.LineWorkerID,
				TenantID:     &attempt.TenantID,
				Role:         enums.ActorRoleLineWorker.String(),
			},
			Data: payloads.PaymentCompletedEvent{
				PaymentID:      payment.ID,
				AttemptID:      attempt.ID,
				TenantID:       attempt.TenantID,
				RetailerID:     attempt.RetailerID,
				RetailerName:   attempt.RetailerName,
				RetailerPhone:  attempt.RetailerPhone,
				LineWorkerID:   attempt.LineWorkerID,
				LineWorkerName: attempt.LineWorkerName,
				Amount:         attempt.Amount,
				CompletedAt:    verifiedAt,
			},
			Version: 1,
		})
	})
	if err == nil {
		return payment, nil
	}

	if dbpkg.IsUniqueViolation(err, "ux_payments_attempt_id") {
		existing, lookupErr := s.ledger.FindByAttemptID(ctx, attempt.ID)
		if lookupErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, lookupErr, "load committed payment")
		}
		if s.logg != nil {
			s.logg.Info(ctx, "attempt already committed, returning existing payment")
		}
		return existing, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "commit payment")
}

// Cancel discards the worker's attempt. Safe to call with no attempt stored.
func (s *service) Cancel(ctx context.Context, actor Actor) error {
	if err := validateActor(actor); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, actor.LineWorkerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete attempt")
	}
	return nil
}

// Current returns the worker's stored attempt, or nil when idle.
func (s *service) Current(ctx context.Context, actor Actor) (*Attempt, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	attempt, err := s.store.Get(ctx, actor.LineWorkerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attempt")
	}
	return attempt, nil
}

func (s *service) loadAttempt(ctx context.Context, actor Actor) (*Attempt, error) {
	attempt, err := s.store.Get(ctx, actor.LineWorkerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attempt")
	}
	if attempt == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no active collection attempt")
	}
	if attempt.TenantID != actor.TenantID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "attempt belongs to another tenant")
	}
	return attempt, nil
}

func validateActor(actor Actor) error {
	if actor.LineWorkerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "line worker id is required")
	}
	if actor.TenantID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "tenant id is required")
	}
	return nil
}
