package razorpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPaymentSignature_RoundTrip(t *testing.T) {
	secret := "test_webhook_secret"
	sig := SignPayload("order_RZP123", "pay_RZP456", secret)

	assert.True(t, VerifyPaymentSignature("order_RZP123", "pay_RZP456", sig, secret))
}

func TestVerifyPaymentSignature_UppercaseHexAccepted(t *testing.T) {
	secret := "test_webhook_secret"
	sig := SignPayload("order_RZP123", "pay_RZP456", secret)

	upper := ""
	for _, r := range sig {
		if r >= 'a' && r <= 'f' {
			upper += string(r - 32)
		} else {
			upper += string(r)
		}
	}

	assert.True(t, VerifyPaymentSignature("order_RZP123", "pay_RZP456", upper, secret))
}

func TestVerifyPaymentSignature_Rejections(t *testing.T) {
	secret := "test_webhook_secret"
	sig := SignPayload("order_RZP123", "pay_RZP456", secret)
	require.NotEmpty(t, sig)

	// Подпись с одним испорченным символом
	flipped := []byte(sig)
	if flipped[len(flipped)-1] == 'a' {
		flipped[len(flipped)-1] = 'b'
	} else {
		flipped[len(flipped)-1] = 'a'
	}

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
	}{
		{"tampered order id", "order_OTHER", "pay_RZP456", sig, secret},
		{"tampered payment id", "order_RZP123", "pay_OTHER", sig, secret},
		{"wrong secret", "order_RZP123", "pay_RZP456", sig, "another_secret"},
		{"single char flipped", "order_RZP123", "pay_RZP456", string(flipped), secret},
		{"truncated signature", "order_RZP123", "pay_RZP456", sig[:len(sig)-2], secret},
		{"non-hex signature", "order_RZP123", "pay_RZP456", "not-a-hex-string!", secret},
		{"empty signature", "order_RZP123", "pay_RZP456", "", secret},
		{"empty secret", "order_RZP123", "pay_RZP456", sig, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPaymentSignature(tt.orderID, tt.paymentID, tt.signature, tt.secret))
		})
	}
}
