package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sahilkadam/medipay-backend/pkg/config"
)

func testConfig(endpoint string) config.SMSConfig {
	return config.SMSConfig{
		APIKey:      "test-key",
		Endpoint:    endpoint,
		SendTimeout: 5 * time.Second,
	}
}

func TestClientSend(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"return":true,"request_id":"abc","message":["SMS sent successfully."]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Send(context.Background(), "9876543210", "Your verification code is 123456"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAuth != "test-key" {
		t.Fatalf("authorization header: got %q", gotAuth)
	}
	if gotBody["numbers"] != "9876543210" {
		t.Fatalf("numbers: got %v", gotBody["numbers"])
	}
	if gotBody["message"] != "Your verification code is 123456" {
		t.Fatalf("message: got %v", gotBody["message"])
	}
	if gotBody["route"] != "q" {
		t.Fatalf("route: got %v", gotBody["route"])
	}
}

func TestClientSendProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"return":false,"message":["Invalid Authentication"]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Send(context.Background(), "9876543210", "hello"); err == nil {
		t.Fatal("expected rejection error")
	}
}

func TestClientSendHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Send(context.Background(), "9876543210", "hello"); err == nil {
		t.Fatal("expected status error")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(config.SMSConfig{Endpoint: "https://example.test"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestClientSendValidatesInputs(t *testing.T) {
	client, err := NewClient(testConfig("https://example.test"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Send(context.Background(), "", "hello"); err == nil {
		t.Fatal("expected error for empty phone")
	}
	if err := client.Send(context.Background(), "9876543210", ""); err == nil {
		t.Fatal("expected error for empty message")
	}
}
