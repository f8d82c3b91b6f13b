package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyPaymentSignature проверяет подпись callback'а Razorpay.
// Подпись - hex(HMAC-SHA256("{orderID}|{paymentID}", secret)).
// Это единственное доказательство подлинности платежа, на котором держится
// вся выдача доступа, поэтому сравнение только через hmac.Equal.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	sig := strings.TrimSpace(signature)
	if sig == "" || secret == "" {
		return false
	}

	decoded, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(mac.Sum(nil), decoded)
}

// SignPayload считает подпись так же, как ее считает шлюз.
// Используется в тестах и в sandbox-режиме.
func SignPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
