package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Signer checks the HMAC-SHA256 signatures Razorpay attaches to client-side
// payment results and to webhooks.
type Signer struct {
	keySecret     []byte
	webhookSecret []byte
}

func NewSigner(keySecret, webhookSecret string) *Signer {
	return &Signer{keySecret: []byte(keySecret), webhookSecret: []byte(webhookSecret)}
}

// PaymentSignature is hex(HMAC-SHA256(keySecret, orderID + "|" + paymentID)).
func (s *Signer) PaymentSignature(orderID, paymentID string) string {
	return sign(s.keySecret, []byte(orderID+"|"+paymentID))
}

// VerifyPayment compares in constant time. Empty inputs never verify.
func (s *Signer) VerifyPayment(orderID, paymentID, signature string) bool {
	if len(s.keySecret) == 0 || orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	return equal(s.PaymentSignature(orderID, paymentID), signature)
}

// VerifyWebhook checks the X-Razorpay-Signature header against the raw body.
func (s *Signer) VerifyWebhook(body []byte, signature string) bool {
	if len(s.webhookSecret) == 0 || signature == "" {
		return false
	}
	return equal(sign(s.webhookSecret, body), signature)
}

func sign(secret, msg []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(msg)
	return hex.EncodeToString(mac.Sum(nil))
}

func equal(expected, got string) bool {
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(got))))
}
