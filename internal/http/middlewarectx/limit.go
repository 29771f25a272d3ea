package middlewarectx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/satans-studio/studio-backend/internal/http/response"
)

// Предел чтения тела при извлечении ключа лимитера.
const maxBodyBytes = 1 << 20

// keyedLimiter хранит лимитер на каждый ключ (IP клиента + почта из тела).
// Записи не вычищаются: количество клиентов небольшого сайта это позволяет.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newKeyedLimiter(limit rate.Limit, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	limiter, ok := k.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(k.limit, k.burst)
		k.limiters[key] = limiter
	}
	k.mu.Unlock()
	return limiter.Allow()
}

// peekEmail извлекает поле email из тела запроса и возвращает тело на место,
// чтобы обработчик смог прочитать его заново. При нечитаемом или не-JSON
// теле возвращает пустую строку: такой запрос лимитируется только по IP.
func peekEmail(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var req struct {
		Email string `json:"email"`
	}
	if err = json.Unmarshal(body, &req); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(req.Email))
}

// RateLimitMiddleware ограничивает частоту запросов по паре IP клиента
// и почты из тела запроса, чтобы перебор разных учеток с одного адреса
// и атака на одну учетку с разных адресов лимитировались раздельно.
// Вешается на чувствительные операции: вход, повторная отправка кода,
// восстановление пароля.
func RateLimitMiddleware(limit rate.Limit, burst int, log *slog.Logger) func(http.Handler) http.Handler {
	limiters := newKeyedLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			key := host + "|" + peekEmail(r)
			if !limiters.allow(key) {
				log.Error("too many requests", slog.String("key", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
