// Package random генерирует коды подтверждения почты и токены сброса пароля.
//
// Оба значения используются для проверки владения почтовым ящиком, поэтому
// источником случайности служит crypto/rand, а не math/rand.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// VerificationCode возвращает шестизначный числовой код подтверждения
// в диапазоне 100000-999999.
func VerificationCode() (string, error) {
	const op = "random.VerificationCode"
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// ResetToken возвращает hex-представление 32 случайных байт
// для одноразовой ссылки сброса пароля.
func ResetToken() (string, error) {
	const op = "random.ResetToken"
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}
