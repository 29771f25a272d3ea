// Package notificationread реализует HTTP-обработчик пометки уведомления прочитанным.
package notificationread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/satans-studio/studio-backend/internal/http/response"
	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/services/admin"
)

// Service описывает интерфейс бизнес-логики пометки уведомления.
type Service interface {
	MarkNotificationRead(ctx context.Context, id int) error
}

// Handler обрабатывает HTTP-запросы пометки уведомления.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пометка уведомления прочитанным
// @Tags Admin
// @Produce  json
// @Param id path int true "Идентификатор уведомления"
// @Success 200 {object} response.Response "Уведомление помечено"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 404 {object} response.ErrorResponse "Уведомление не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/notifications/{id}/read [put]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.notificationread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid notification id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid notification id"))
		return
	}

	if err := h.service.MarkNotificationRead(r.Context(), id); err != nil {
		if errors.Is(err, admin.ErrNotificationNotFound) {
			log.Error("notification not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("notification not found"))
			return
		}
		log.Error("failed to mark notification read", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to mark notification read"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "notification marked as read",
	}))
}
