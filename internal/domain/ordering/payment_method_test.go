package ordering

import (
	"testing"
	"time"
)

func TestNewPaymentMethodValidation(t *testing.T) {
	future := testNow.AddDate(1, 0, 0)
	cases := []struct {
		name       string
		cardNumber string
		security   string
		holder     string
		expiration time.Time
	}{
		{"missing card number", "", "123", "John", future},
		{"missing security number", "4012888888881881", "", "John", future},
		{"missing holder", "4012888888881881", "123", "   ", future},
		{"expired", "4012888888881881", "123", "John", testNow.Add(-time.Minute)},
		{"expires exactly now", "4012888888881881", "123", "John", testNow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPaymentMethod(CardTypeVisa, "", tc.cardNumber, tc.security, tc.holder, tc.expiration, testNow)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got=%v", err)
			}
		})
	}
}

func TestNewPaymentMethodMasksAndFingerprints(t *testing.T) {
	method, err := NewPaymentMethod(CardTypeVisa, "personal", "4012888888881881", "123", "John Senior", testNow.AddDate(1, 0, 0), testNow)
	if err != nil {
		t.Fatalf("new payment method: %v", err)
	}
	if method.MaskedCardNumber != "************1881" {
		t.Fatalf("masked card: got=%s", method.MaskedCardNumber)
	}
	if method.CardFingerprint == "" || method.CardFingerprint == "4012888888881881" {
		t.Fatalf("fingerprint: got=%s", method.CardFingerprint)
	}
	if method.CardFingerprint != CardFingerprint("4012888888881881") {
		t.Fatalf("fingerprint must be deterministic")
	}
}

func TestMaskCardNumberShortInput(t *testing.T) {
	if got := MaskCardNumber("1881"); got != "1881" {
		t.Fatalf("short number: got=%s", got)
	}
	if got := MaskCardNumber("81"); got != "81" {
		t.Fatalf("very short number: got=%s", got)
	}
}

func TestIsEqualToTrimsAndNormalizes(t *testing.T) {
	expiration := testNow.AddDate(1, 0, 0)
	method, err := NewPaymentMethod(CardTypeVisa, "", "4012888888881881", "123", "John", expiration, testNow)
	if err != nil {
		t.Fatalf("new payment method: %v", err)
	}
	if !method.IsEqualTo(CardTypeVisa, "  4012888888881881  ", expiration) {
		t.Fatalf("trimmed card number must match")
	}
	if !method.IsEqualTo(CardTypeVisa, "4012888888881881", expiration.In(time.FixedZone("X", 3600))) {
		t.Fatalf("expiration comparison must ignore location")
	}
	if method.IsEqualTo(CardTypeAmex, "4012888888881881", expiration) {
		t.Fatalf("different card type must not match")
	}
	if method.IsEqualTo(CardTypeVisa, "5105105105105100", expiration) {
		t.Fatalf("different card number must not match")
	}
}
