// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Пользовательские сессии получают токен с id и почтой, сессия администратора —
// токен с почтой и ролью admin. Срок жизни токена задается при создании Maker.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Роли, попадающие в claim Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserID               int    `json:"id,omitempty"`    // Идентификатор пользователя, 0 для администратора
	Email                string `json:"email"`           // Почта владельца токена
	Role                 string `json:"role,omitempty"`  // Роль: user или admin
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateUserToken выпускает токен пользовательской сессии
	GenerateUserToken(userID int, email string) (string, error)
	// GenerateAdminToken выпускает токен сессии администратора
	GenerateAdminToken(email string) (string, error)
	// ParseToken возвращает *CustomClaims, если токен корректен
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
