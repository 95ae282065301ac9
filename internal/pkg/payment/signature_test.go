package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func signPair(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "top-secret"
	validSig := signPair("order_123", "pay_456", secret)

	if !VerifySignature("order_123", "pay_456", validSig, secret) {
		t.Fatalf("expected valid signature to verify")
	}
	if !VerifySignature("order_123", "pay_456", strings.ToUpper(validSig), secret) {
		t.Fatalf("expected uppercase hex signature to verify")
	}
	if VerifySignature("order_123", "pay_456", validSig, "other-secret") {
		t.Fatalf("expected signature under wrong secret to fail")
	}
	if VerifySignature("order_999", "pay_456", validSig, secret) {
		t.Fatalf("expected signature for different order to fail")
	}
	if VerifySignature("order_123", "pay_456", "deadbeef", secret) {
		t.Fatalf("expected bogus signature to fail")
	}
	if VerifySignature("order_123", "pay_456", "not-hex", secret) {
		t.Fatalf("expected non-hex signature to fail")
	}
	if VerifySignature("order_123", "pay_456", "", secret) {
		t.Fatalf("expected empty signature to fail")
	}
	if VerifySignature("order_123", "pay_456", validSig, "") {
		t.Fatalf("expected empty secret to fail")
	}
}

func TestVerifySignature_FieldOrder(t *testing.T) {
	// The digest covers order id then payment id; swapping them must fail.
	secret := "top-secret"
	sig := signPair("order_123", "pay_456", secret)
	if VerifySignature("pay_456", "order_123", sig, secret) {
		t.Fatalf("expected swapped order/payment ids to fail verification")
	}
}

func TestFeeFor(t *testing.T) {
	tests := []struct {
		category string
		want     int
		wantErr  bool
	}{
		{category: "5 kilometer", want: 250},
		{category: "10 kilometer", want: 500},
		{category: "21 kilometer", want: 500},
		{category: "42 kilometer", wantErr: true},
		{category: "", wantErr: true},
		{category: "10 Kilometer", wantErr: true},
	}

	for _, tt := range tests {
		got, err := FeeFor(tt.category)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("FeeFor(%q): expected error, got %d", tt.category, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("FeeFor(%q): unexpected error: %v", tt.category, err)
		}
		if got != tt.want {
			t.Fatalf("FeeFor(%q) = %d, want %d", tt.category, got, tt.want)
		}
	}
}

func TestCategoriesCoversFeeTable(t *testing.T) {
	cats := Categories()
	if len(cats) != len(feeTable) {
		t.Fatalf("expected %d categories, got %d", len(feeTable), len(cats))
	}
	for _, c := range cats {
		if _, err := FeeFor(c); err != nil {
			t.Fatalf("category %q listed but has no fee", c)
		}
	}
}
