package confirmations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/sahilkadam/medipay-backend/internal/otp"
	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	"github.com/sahilkadam/medipay-backend/pkg/enums"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
	"github.com/sahilkadam/medipay-backend/pkg/outbox"
	"github.com/sahilkadam/medipay-backend/pkg/outbox/idempotency"
	"github.com/sahilkadam/medipay-backend/pkg/outbox/payloads"
	"github.com/sahilkadam/medipay-backend/pkg/sms"
)

const paymentConfirmationConsumer = "payment-confirmations"

type tenantLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

// Consumer fans payment.completed events out as confirmation SMS. Delivery is
// best effort: the ledger entry is already durable, so SMS failures are
// logged and the event is acked anyway.
type Consumer struct {
	tenants      tenantLookup
	messenger    sms.Sender
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds a payment confirmation consumer.
func NewConsumer(tenants tenantLookup, messenger sms.Sender, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if tenants == nil {
		return nil, fmt.Errorf("tenant lookup required")
	}
	if messenger == nil {
		return nil, fmt.Errorf("messenger required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("payments subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		tenants:      tenants,
		messenger:    messenger,
		subscription: subscription,
		idempotency:  manager,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	fields := map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	}
	logCtx := c.logg.WithFields(ctx, fields)

	if eventType != string(enums.EventPaymentCompleted) {
		c.logg.Info(logCtx, "skipping non-payment event")
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, paymentConfirmationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	var payload payloads.PaymentCompletedEvent
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		_ = c.idempotency.Delete(ctx, paymentConfirmationConsumer, eventID)
		return processResult{nack: true}
	}

	logCtx = c.logg.WithFields(logCtx, map[string]any{
		"payment_id": payload.PaymentID.String(),
		"tenant_id":  payload.TenantID.String(),
	})

	tenant, err := c.tenants.FindByID(ctx, payload.TenantID)
	if err != nil {
		c.logg.Error(logCtx, "tenant lookup failed", err)
		_ = c.idempotency.Delete(ctx, paymentConfirmationConsumer, eventID)
		return processResult{nack: true}
	}

	if err := c.fanOut(ctx, tenant, payload); err != nil {
		// Best effort only: the payment is already durable and confirmations
		// must never invalidate it, so the event is acked regardless.
		c.logg.Error(logCtx, "confirmation delivery incomplete", err)
	} else {
		c.logg.Info(logCtx, "confirmations dispatched")
	}

	return processResult{ack: true}
}

func (c *Consumer) fanOut(ctx context.Context, tenant *models.Tenant, payload payloads.PaymentCompletedEvent) error {
	var errs error

	retailerMsg := otp.RetailerConfirmationMessage(payload.Amount, payload.LineWorkerName, tenant.Name)
	if err := c.messenger.Send(ctx, payload.RetailerPhone, retailerMsg); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("retailer confirmation: %w", err))
	}

	// The wholesaler copy only goes out when an admin phone is on file.
	if tenant.AdminPhone != nil && strings.TrimSpace(*tenant.AdminPhone) != "" {
		wholesalerMsg := otp.WholesalerConfirmationMessage(payload.LineWorkerName, payload.Amount, payload.RetailerName)
		if err := c.messenger.Send(ctx, *tenant.AdminPhone, wholesalerMsg); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("wholesaler confirmation: %w", err))
		}
	}

	return errs
}
