package confirmations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahilkadam/medipay-backend/pkg/db/models"
	"github.com/sahilkadam/medipay-backend/pkg/outbox/payloads"
)

type fakeMessenger struct {
	phones   []string
	messages []string
	failFor  string
}

func (f *fakeMessenger) Send(ctx context.Context, phone, message string) error {
	if f.failFor != "" && phone == f.failFor {
		return errors.New("provider down")
	}
	f.phones = append(f.phones, phone)
	f.messages = append(f.messages, message)
	return nil
}

func testPayload() payloads.PaymentCompletedEvent {
	return payloads.PaymentCompletedEvent{
		PaymentID:      uuid.New(),
		AttemptID:      uuid.New(),
		TenantID:       uuid.New(),
		RetailerID:     uuid.New(),
		RetailerName:   "Sharma Medical",
		RetailerPhone:  "9876543210",
		LineWorkerID:   uuid.New(),
		LineWorkerName: "Ravi",
		Amount:         decimal.NewFromInt(1500),
	}
}

func stringPtr(value string) *string {
	return &value
}

func TestFanOutSendsBothConfirmations(t *testing.T) {
	messenger := &fakeMessenger{}
	consumer := &Consumer{messenger: messenger}
	payload := testPayload()
	tenant := &models.Tenant{Name: "MediCorp", AdminPhone: stringPtr("9123456789")}

	if err := consumer.fanOut(context.Background(), tenant, payload); err != nil {
		t.Fatalf("fan out: %v", err)
	}
	if len(messenger.phones) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messenger.phones))
	}
	if messenger.phones[0] != "9876543210" {
		t.Fatalf("retailer confirmation to wrong phone: %s", messenger.phones[0])
	}
	if messenger.phones[1] != "9123456789" {
		t.Fatalf("wholesaler confirmation to wrong phone: %s", messenger.phones[1])
	}
	if !strings.Contains(messenger.messages[0], "1500") || !strings.Contains(messenger.messages[0], "MediCorp") {
		t.Fatalf("retailer message missing fields: %q", messenger.messages[0])
	}
	if !strings.Contains(messenger.messages[1], "Sharma Medical") {
		t.Fatalf("wholesaler message missing retailer name: %q", messenger.messages[1])
	}
}

func TestFanOutSkipsWholesalerWithoutAdminPhone(t *testing.T) {
	for _, tenant := range []*models.Tenant{
		{Name: "MediCorp"},
		{Name: "MediCorp", AdminPhone: stringPtr("")},
		{Name: "MediCorp", AdminPhone: stringPtr("   ")},
	} {
		messenger := &fakeMessenger{}
		consumer := &Consumer{messenger: messenger}

		if err := consumer.fanOut(context.Background(), tenant, testPayload()); err != nil {
			t.Fatalf("fan out: %v", err)
		}
		if len(messenger.phones) != 1 {
			t.Fatalf("expected retailer confirmation only, got %v", messenger.phones)
		}
	}
}

func TestFanOutAggregatesFailures(t *testing.T) {
	messenger := &fakeMessenger{failFor: "9876543210"}
	consumer := &Consumer{messenger: messenger}
	tenant := &models.Tenant{Name: "MediCorp", AdminPhone: stringPtr("9123456789")}

	err := consumer.fanOut(context.Background(), tenant, testPayload())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	// The wholesaler copy still goes out when the retailer send fails.
	if len(messenger.phones) != 1 || messenger.phones[0] != "9123456789" {
		t.Fatalf("expected wholesaler confirmation despite retailer failure, got %v", messenger.phones)
	}
}
