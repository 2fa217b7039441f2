package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CollectionMetrics records counters for the OTP collection flow.
type CollectionMetrics struct {
	otpSent        *prometheus.CounterVec
	verifyOutcomes *prometheus.CounterVec
	committed      prometheus.Counter
	smsFallback    prometheus.Counter
}

// NewCollectionMetrics registers the collection flow metrics on the provided registerer.
func NewCollectionMetrics(reg prometheus.Registerer) *CollectionMetrics {
	if reg == nil {
		return &CollectionMetrics{}
	}
	otpSent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_otp_sent_total",
		Help: "OTP messages dispatched for collection attempts.",
	}, []string{"channel"})
	verifyOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_verify_total",
		Help: "Verification attempts by outcome.",
	}, []string{"outcome"})
	committed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "collection_payments_committed_total",
		Help: "Payments written after successful verification.",
	})
	smsFallback := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sms_fallback_total",
		Help: "SMS sends that fell back to the simulated channel.",
	})
	reg.MustRegister(otpSent, verifyOutcomes, committed, smsFallback)
	return &CollectionMetrics{
		otpSent:        otpSent,
		verifyOutcomes: verifyOutcomes,
		committed:      committed,
		smsFallback:    smsFallback,
	}
}

// IncOTPSent increments the dispatched OTP counter for the named channel.
func (c *CollectionMetrics) IncOTPSent(channel string) {
	if c == nil || c.otpSent == nil {
		return
	}
	c.otpSent.WithLabelValues(normalizeLabel(channel)).Inc()
}

// IncVerify increments the verification counter for the given outcome.
func (c *CollectionMetrics) IncVerify(outcome string) {
	if c == nil || c.verifyOutcomes == nil {
		return
	}
	c.verifyOutcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCommitted increments the committed payments counter.
func (c *CollectionMetrics) IncCommitted() {
	if c == nil || c.committed == nil {
		return
	}
	c.committed.Inc()
}

// IncSMSFallback increments the fallback send counter.
func (c *CollectionMetrics) IncSMSFallback() {
	if c == nil || c.smsFallback == nil {
		return
	}
	c.smsFallback.Inc()
}

// JobMetrics records metadata for background loops such as the outbox publisher.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewJobMetrics registers the background job metrics on the provided registerer.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of background jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful background job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed background job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &JobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named job.
func (j *JobMetrics) ObserveDuration(job string, duration time.Duration) {
	if j == nil || j.duration == nil {
		return
	}
	j.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (j *JobMetrics) IncSuccess(job string) {
	if j == nil || j.success == nil {
		return
	}
	j.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (j *JobMetrics) IncFailure(job string) {
	if j == nil || j.failure == nil {
		return
	}
	j.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
