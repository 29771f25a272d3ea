package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature проверяет подпись callback-а Razorpay: HMAC-SHA256 от
// строки "orderID|paymentID" на секретном ключе. Сравнение выполняется
// через hmac.Equal, чтобы не зависеть от времени совпадения префиксов.
func VerifySignature(orderID, paymentID, signature, keySecret string) bool {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
