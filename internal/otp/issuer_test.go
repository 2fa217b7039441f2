package otp

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGenerateProducesSixDigitCodes(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if code[0] == '0' {
			t.Fatalf("leading zero in %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in %q", code)
			}
		}
	}
}

func TestVerifyExactMatch(t *testing.T) {
	cases := []struct {
		name     string
		issued   string
		provided string
		want     bool
	}{
		{name: "match", issued: "123456", provided: "123456", want: true},
		{name: "mismatch", issued: "123456", provided: "654321", want: false},
		{name: "leading space is not trimmed", issued: "123456", provided: " 123456", want: false},
		{name: "trailing space is not trimmed", issued: "123456", provided: "123456 ", want: false},
		{name: "empty provided", issued: "123456", provided: "", want: false},
		{name: "empty issued never matches", issued: "", provided: "", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Verify(tc.issued, tc.provided); got != tc.want {
				t.Fatalf("Verify(%q, %q) = %v, want %v", tc.issued, tc.provided, got, tc.want)
			}
		})
	}
}

func TestPaymentOTPMessageIncludesCodeTwice(t *testing.T) {
	msg := PaymentOTPMessage("123456", decimal.NewFromInt(1500), "Ravi", "MediCorp")
	if strings.Count(msg, "123456") != 2 {
		t.Fatalf("expected code twice in %q", msg)
	}
	if !strings.Contains(msg, "Ravi") || !strings.Contains(msg, "MediCorp") || !strings.Contains(msg, "1500") {
		t.Fatalf("missing fields in %q", msg)
	}
}

func TestConfirmationMessages(t *testing.T) {
	retailerMsg := RetailerConfirmationMessage(decimal.NewFromInt(1500), "Ravi", "MediCorp")
	if !strings.Contains(retailerMsg, "1500") || !strings.Contains(retailerMsg, "Ravi") || !strings.Contains(retailerMsg, "MediCorp") {
		t.Fatalf("missing fields in %q", retailerMsg)
	}

	wholesalerMsg := WholesalerConfirmationMessage("Ravi", decimal.NewFromInt(1500), "Sharma Medical")
	if !strings.Contains(wholesalerMsg, "Ravi") || !strings.Contains(wholesalerMsg, "1500") || !strings.Contains(wholesalerMsg, "Sharma Medical") {
		t.Fatalf("missing fields in %q", wholesalerMsg)
	}
}
