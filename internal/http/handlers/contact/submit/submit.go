// Package submit реализует HTTP-обработчик публичной формы обратной связи.
package submit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/satans-studio/studio-backend/internal/http/response"
	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/models"
)

// Request — структура входных данных формы обратной связи.
type Request struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required,min=10,max=15"`
	Service  string `json:"service" validate:"required"`
	Message  string `json:"message" validate:"required,min=5"`
}

// Service описывает интерфейс бизнес-логики обработки заявок.
type Service interface {
	Submit(ctx context.Context, sub models.ContactSubmission) (*models.ContactSubmission, error)
}

// Handler обрабатывает HTTP-запросы формы обратной связи.
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
// @Summary Отправка заявки
// @Description Сохраняет заявку с формы обратной связи и уведомляет администратора.
// @Tags Contact
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные заявки"
// @Success 201 {object} response.Response "Заявка сохранена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /contact/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	created, err := h.service.Submit(r.Context(), models.ContactSubmission{
		FullName: req.FullName,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Service:  req.Service,
		Message:  req.Message,
	})
	if err != nil {
		log.Error("failed to save submission", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to submit contact form"))
		return
	}

	log.Info("contact form submitted", slog.Int("id", created.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(created))
}
