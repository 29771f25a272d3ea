// Package portfoliocreate реализует HTTP-обработчик добавления работы в портфолио.
package portfoliocreate

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

// Service описывает интерфейс бизнес-логики добавления работы.
type Service interface {
	CreatePortfolioItem(ctx context.Context, item models.PortfolioItem) (*models.PortfolioItem, error)
}

// Handler обрабатывает HTTP-запросы добавления работы.
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
// @Summary Добавление работы в портфолио
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyPortfolioItem true "Данные работы"
// @Success 201 {object} response.Response "Созданная работа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/portfolio [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.portfoliocreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPortfolioItem
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

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	created, err := h.service.CreatePortfolioItem(r.Context(), models.PortfolioItem{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		ProjectURL:   req.ProjectURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	})
	if err != nil {
		log.Error("failed to create portfolio item", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create portfolio item"))
		return
	}

	log.Info("portfolio item created", slog.Int("id", created.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(created))
}
