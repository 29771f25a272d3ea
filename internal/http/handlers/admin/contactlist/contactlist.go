// Package contactlist реализует HTTP-обработчик списка заявок для панели администратора.
package contactlist

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

// Service описывает интерфейс бизнес-логики списка заявок.
type Service interface {
	ListContacts(ctx context.Context) ([]*models.ContactSubmission, error)
}

// Handler обрабатывает HTTP-запросы списка заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список заявок
// @Description Возвращает все заявки с формы обратной связи, новые первыми.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response "Список заявок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/contacts [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.contactlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	contacts, err := h.service.ListContacts(r.Context())
	if err != nil {
		log.Error("failed to list contacts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list contacts"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(contacts),
		"contacts": contacts,
	}))
}
