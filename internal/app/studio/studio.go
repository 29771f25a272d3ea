// Package studio собирает HTTP-приложение сайта студии: хранилище,
// миграции, кэш, очередь писем, платежный шлюз и маршруты.
package studio

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/satans-studio/studio-backend/internal/cache"
	"github.com/satans-studio/studio-backend/internal/config"
	"github.com/satans-studio/studio-backend/internal/lib/jwt"
	"github.com/satans-studio/studio-backend/internal/migrations"
	"github.com/satans-studio/studio-backend/internal/rabbitmq"
	"github.com/satans-studio/studio-backend/internal/razorpay"
	adminservice "github.com/satans-studio/studio-backend/internal/services/admin"
	authservice "github.com/satans-studio/studio-backend/internal/services/auth"
	catalogservice "github.com/satans-studio/studio-backend/internal/services/catalog"
	contactservice "github.com/satans-studio/studio-backend/internal/services/contact"
	"github.com/satans-studio/studio-backend/internal/services/dispatch"
	paymentservice "github.com/satans-studio/studio-backend/internal/services/payment"
	"github.com/satans-studio/studio-backend/internal/storage/repository"
)

// App HTTP-приложение сайта студии.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает все зависимости приложения и готовый к запуску HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEmailQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	dispatcher := dispatch.New(ch, logger)
	gateway := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	authService := authservice.New(db, jwtMaker, dispatcher,
		cfg.AdminEmail, cfg.AdminPasswordHash, cfg.FrontendURL, logger)
	paymentService := paymentservice.New(db, gateway, dispatcher, cfg.RazorpayKeySecret, logger)
	catalogService := catalogservice.New(db, cacheRedis, cfg.CatalogTTL, logger)
	contactService := contactservice.New(db, dispatcher, cfg.AdminEmail, logger)
	adminService := adminservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.AdminEmail, jwtMaker,
		authService, paymentService, catalogService, contactService, adminService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		a.db.DB.Close()
		return err
	}
}
