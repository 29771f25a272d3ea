// Package studio предоставляет маршруты сайта студии.
package studio

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/contactlist"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/contactstatus"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/notificationlist"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/notificationread"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/packagecreate"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/packagedelete"
	adminpackagelist "github.com/satans-studio/studio-backend/internal/http/handlers/admin/packagelist"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/packageupdate"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/portfoliocreate"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/portfoliodelete"
	adminportfoliolist "github.com/satans-studio/studio-backend/internal/http/handlers/admin/portfoliolist"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/portfolioupdate"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/subscriptionlist"
	"github.com/satans-studio/studio-backend/internal/http/handlers/admin/userlist"
	"github.com/satans-studio/studio-backend/internal/http/handlers/auth/adminlogin"
	"github.com/satans-studio/studio-backend/internal/http/handlers/auth/forgotpassword"
	"github.com/satans-studio/studio-backend/internal/http/handlers/auth/login"
	"github.com/satans-studio/studio-backend/internal/http/handlers/auth/register"
	"github.com/satans-studio/studio-backend/internal/http/handlers/auth/resendcode"
	"github.com/satans-studio/studio-backend/internal/http/handlers/auth/resetpassword"
	"github.com/satans-studio/studio-backend/internal/http/handlers/auth/verifyemail"
	"github.com/satans-studio/studio-backend/internal/http/handlers/catalog/packagelist"
	"github.com/satans-studio/studio-backend/internal/http/handlers/catalog/portfoliolist"
	"github.com/satans-studio/studio-backend/internal/http/handlers/contact/submit"
	"github.com/satans-studio/studio-backend/internal/http/handlers/payment/createorder"
	"github.com/satans-studio/studio-backend/internal/http/handlers/payment/receipt"
	"github.com/satans-studio/studio-backend/internal/http/handlers/payment/verify"
	"github.com/satans-studio/studio-backend/internal/http/handlers/user/profile"
	"github.com/satans-studio/studio-backend/internal/http/middlewarectx"
	adminservice "github.com/satans-studio/studio-backend/internal/services/admin"
	authservice "github.com/satans-studio/studio-backend/internal/services/auth"
	catalogservice "github.com/satans-studio/studio-backend/internal/services/catalog"
	contactservice "github.com/satans-studio/studio-backend/internal/services/contact"
	paymentservice "github.com/satans-studio/studio-backend/internal/services/payment"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, adminEmail string,
	tokenParser middlewarectx.TokenParser,
	authService *authservice.AuthService,
	paymentService *paymentservice.PaymentService,
	catalogService *catalogservice.CatalogService,
	contactService *contactservice.ContactService,
	adminService *adminservice.AdminService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/verify-email", verifyemail.New(logger, authService).ServeHTTP)
		r.Post("/auth/admin-login", adminlogin.New(logger, authService).ServeHTTP)
		r.Post("/auth/forgot-password", forgotpassword.New(logger, authService).ServeHTTP)
		r.Post("/auth/reset-password", resetpassword.New(logger, authService).ServeHTTP)
		r.Post("/contact/submit", submit.New(logger, contactService).ServeHTTP)
		r.Get("/packages", packagelist.New(logger, catalogService).ServeHTTP)
		r.Get("/portfolio", portfoliolist.New(logger, catalogService).ServeHTTP)

		// Вход и повторная отправка кода под лимитером частоты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(1, 5, logger))
			r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
			r.Post("/auth/resend-code", resendcode.New(logger, authService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Get("/user/profile", profile.New(logger, authService).ServeHTTP)
			r.Post("/payment/create-order", createorder.New(logger, paymentService).ServeHTTP)
			r.Post("/payment/verify", verify.New(logger, paymentService).ServeHTTP)
			r.Get("/payment/receipt/{transactionID}", receipt.New(logger, paymentService).ServeHTTP)
		})

		// Панель администратора
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.AdminMiddleware(adminEmail, logger))
			r.Get("/users", userlist.New(logger, adminService).ServeHTTP)
			r.Get("/subscriptions", subscriptionlist.New(logger, adminService).ServeHTTP)
			r.Get("/contacts", contactlist.New(logger, adminService).ServeHTTP)
			r.Put("/contacts/{id}/status", contactstatus.New(logger, adminService).ServeHTTP)
			r.Get("/notifications", notificationlist.New(logger, adminService).ServeHTTP)
			r.Put("/notifications/{id}/read", notificationread.New(logger, adminService).ServeHTTP)
			r.Get("/packages", adminpackagelist.New(logger, catalogService).ServeHTTP)
			r.Post("/packages", packagecreate.New(logger, catalogService).ServeHTTP)
			r.Put("/packages/{id}", packageupdate.New(logger, catalogService).ServeHTTP)
			r.Delete("/packages/{id}", packagedelete.New(logger, catalogService).ServeHTTP)
			r.Get("/portfolio", adminportfoliolist.New(logger, catalogService).ServeHTTP)
			r.Post("/portfolio", portfoliocreate.New(logger, catalogService).ServeHTTP)
			r.Put("/portfolio/{id}", portfolioupdate.New(logger, catalogService).ServeHTTP)
			r.Delete("/portfolio/{id}", portfoliodelete.New(logger, catalogService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
