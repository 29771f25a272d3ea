package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const keySecret = "rzp_test_secret"

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{
			name:      "valid signature",
			orderID:   "order_ABC123",
			paymentID: "pay_XYZ789",
			signature: signPayload("order_ABC123", "pay_XYZ789", keySecret),
			want:      true,
		},
		{
			name:      "tampered payment id",
			orderID:   "order_ABC123",
			paymentID: "pay_OTHER",
			signature: signPayload("order_ABC123", "pay_XYZ789", keySecret),
			want:      false,
		},
		{
			name:      "signature for different secret",
			orderID:   "order_ABC123",
			paymentID: "pay_XYZ789",
			signature: signPayload("order_ABC123", "pay_XYZ789", "wrong_secret"),
			want:      false,
		},
		{
			name:      "empty signature",
			orderID:   "order_ABC123",
			paymentID: "pay_XYZ789",
			signature: "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySignature(tt.orderID, tt.paymentID, tt.signature, keySecret)
			assert.Equal(t, tt.want, got)
		})
	}
}
