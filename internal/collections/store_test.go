package collections

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/sahilkadam/medipay-backend/pkg/enums"
)

type fakeKV struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeKV) AttemptKey(lineWorkerID string) string {
	return "mp:collection_attempt:" + lineWorkerID
}

func TestRedisAttemptStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisAttemptStore(kv, 30*time.Minute)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	workerID := uuid.New()

	// Absent attempt reads as nil, nil.
	got, err := store.Get(ctx, workerID)
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil attempt, got %+v", got)
	}

	sentAt := time.Date(2025, 8, 10, 10, 0, 0, 0, time.UTC)
	attempt := &Attempt{
		ID:             uuid.New(),
		TenantID:       uuid.New(),
		LineWorkerID:   workerID,
		LineWorkerName: "Ravi",
		RetailerID:     uuid.New(),
		RetailerName:   "Sharma Medical",
		RetailerPhone:  "9876543210",
		Amount:         decimal.NewFromInt(1500),
		Code:           "123456",
		State:          enums.AttemptStateOTPSent,
		InitiatedAt:    sentAt.Add(-time.Minute),
		OTPSentAt:      &sentAt,
	}
	if err := store.Save(ctx, attempt); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := kv.ttls[kv.AttemptKey(workerID.String())]; ttl != 30*time.Minute {
		t.Fatalf("expected ttl refresh, got %s", ttl)
	}

	got, err = store.Get(ctx, workerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored attempt")
	}
	if got.Code != "123456" || got.State != enums.AttemptStateOTPSent {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("amount mismatch: %s", got.Amount)
	}
	if got.OTPSentAt == nil || !got.OTPSentAt.Equal(sentAt) {
		t.Fatalf("otpSentAt mismatch: %v", got.OTPSentAt)
	}

	if err := store.Delete(ctx, workerID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = store.Get(ctx, workerID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("expected deletion, got %+v", got)
	}
}

func TestRedisAttemptStoreValidation(t *testing.T) {
	if _, err := NewRedisAttemptStore(nil, time.Minute); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewRedisAttemptStore(newFakeKV(), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}

	store, err := NewRedisAttemptStore(newFakeKV(), time.Minute)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil attempt")
	}
	if err := store.Save(context.Background(), &Attempt{}); err == nil {
		t.Fatal("expected error for missing line worker id")
	}
}
