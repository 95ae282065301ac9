package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks a Razorpay checkout callback signature.
//
// The gateway signs "<order_id>|<payment_id>" with HMAC-SHA256 under the key
// secret and sends the hex digest back through the browser. The separator and
// field order must match the gateway's scheme exactly. This is the only
// authentication on the completion callback, so the comparison is
// constant time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	sig := strings.TrimSpace(signature)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hmac.Equal(mac.Sum(nil), decodedSig)
}
