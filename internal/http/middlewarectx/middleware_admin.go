package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/satans-studio/studio-backend/internal/http/response"
	"github.com/satans-studio/studio-backend/internal/lib/jwt"
)

// AdminMiddleware пропускает только запросы с ролью admin и почтой
// настроенной учетки администратора. Запускается после JWTMiddleware.
func AdminMiddleware(adminEmail string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role != jwt.RoleAdmin {
				log.Error("admin access denied", slog.String("role", role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			email, ok := r.Context().Value(Email).(string)
			if !ok || email != adminEmail {
				log.Error("admin access denied", slog.String("email", email))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
