package sms

import (
	"context"
	"errors"
	"testing"
)

type stubSender struct {
	calls int
	err   error
}

func (s *stubSender) Send(ctx context.Context, phone, message string) error {
	s.calls++
	return s.err
}

func TestFallbackSenderUsesPrimary(t *testing.T) {
	primary := &stubSender{}
	sender := WithFallback(primary, nil, nil)

	if err := sender.Send(context.Background(), "9876543210", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if primary.calls != 1 {
		t.Fatalf("expected primary to be called once, got %d", primary.calls)
	}
}

func TestFallbackSenderAbsorbsPrimaryFailure(t *testing.T) {
	primary := &stubSender{err: errors.New("provider down")}
	sender := WithFallback(primary, nil, nil)

	if err := sender.Send(context.Background(), "9876543210", "hello"); err != nil {
		t.Fatalf("expected simulated delivery to succeed, got %v", err)
	}
}

func TestFallbackSenderWithoutPrimary(t *testing.T) {
	sender := WithFallback(nil, nil, nil)
	if err := sender.Send(context.Background(), "9876543210", "hello"); err != nil {
		t.Fatalf("expected simulated delivery to succeed, got %v", err)
	}
}
