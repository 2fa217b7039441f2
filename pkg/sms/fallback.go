package sms

import (
	"context"

	"github.com/sahilkadam/medipay-backend/pkg/logger"
	"github.com/sahilkadam/medipay-backend/pkg/metrics"
)

// FallbackSender wraps a provider and simulates delivery when it fails or is
// not configured. The message body is logged at warn level so the code is
// still readable during local development and provider outages.
type FallbackSender struct {
	primary Sender
	logg    *logger.Logger
	metrics *metrics.CollectionMetrics
}

// WithFallback decorates the primary sender. Primary may be nil, in which
// case every send is simulated.
func WithFallback(primary Sender, logg *logger.Logger, m *metrics.CollectionMetrics) *FallbackSender {
	return &FallbackSender{primary: primary, logg: logg, metrics: m}
}

// Send never returns an error: real delivery is attempted first and the
// simulated channel absorbs failures.
func (f *FallbackSender) Send(ctx context.Context, phone, message string) error {
	if f.primary != nil {
		if err := f.primary.Send(ctx, phone, message); err == nil {
			return nil
		} else if f.logg != nil {
			f.logg.Error(ctx, "sms provider send failed, falling back to simulated delivery", err)
		}
	}

	if f.logg != nil {
		fields := map[string]any{
			"phone":   phone,
			"message": message,
		}
		logCtx := f.logg.WithFields(ctx, fields)
		f.logg.Warn(logCtx, "sms delivery simulated")
	}
	f.metrics.IncSMSFallback()
	return nil
}
