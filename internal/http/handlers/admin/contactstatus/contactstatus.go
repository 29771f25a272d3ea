// Package contactstatus реализует HTTP-обработчик смены статуса заявки.
//
// Статус заявки движется только вперед: pending -> contacted -> resolved.
package contactstatus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/satans-studio/studio-backend/internal/http/response"
	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/services/admin"
)

// Request — структура входных данных смены статуса заявки.
type Request struct {
	Status string `json:"status" validate:"required,oneof=pending contacted resolved"`
}

// Service описывает интерфейс бизнес-логики смены статуса заявки.
type Service interface {
	AdvanceContactStatus(ctx context.Context, id int, status string) (*models.ContactSubmission, error)
}

// Handler обрабатывает HTTP-запросы смены статуса заявки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена статуса заявки
// @Description Переводит заявку на следующий статус жизненного цикла.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор заявки"
// @Param request body Request true "Новый статус"
// @Success 200 {object} response.Response "Обновленная заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или запрещенный переход"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/contacts/{id}/status [put]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.contactstatus"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid contact id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid contact id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.AdvanceContactStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrContactNotFound):
			log.Error("contact not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("contact submission not found"))
		case errors.Is(err, admin.ErrInvalidStatus), errors.Is(err, admin.ErrInvalidStatusTransition):
			log.Error("invalid status transition", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid status transition"))
		default:
			log.Error("failed to update contact status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update contact status"))
		}
		return
	}

	log.Info("contact status updated", slog.Int("id", id), slog.String("status", req.Status))
	render.JSON(w, r, response.StatusOKWithData(updated))
}
