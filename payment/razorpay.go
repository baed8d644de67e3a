package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway creates payment orders. Amounts are integer minor units (paise).
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string) (map[string]interface{}, error)
}

// RazorpayGateway talks to the live Razorpay orders API.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) CreateOrder(amount int64, currency, receipt string) (map[string]interface{}, error) {
	return g.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
}

// VerifySignature checks the gateway's proof of payment: an HMAC-SHA256
// hex digest over "orderID|paymentID" under the key secret. hmac.Equal
// keeps the comparison constant-time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
