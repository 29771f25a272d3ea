// Package notificationlist реализует HTTP-обработчик списка уведомлений администратора.
package notificationlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/satans-studio/studio-backend/internal/http/response"
	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка уведомлений.
type Service interface {
	ListNotifications(ctx context.Context) ([]*models.AdminNotification, error)
}

// Handler обрабатывает HTTP-запросы списка уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список уведомлений
// @Description Возвращает последние уведомления администратора, новые первыми.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response "Список уведомлений"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/notifications [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.notificationlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	notifications, err := h.service.ListNotifications(r.Context())
	if err != nil {
		log.Error("failed to list notifications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list notifications"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":         len(notifications),
		"notifications": notifications,
	}))
}
