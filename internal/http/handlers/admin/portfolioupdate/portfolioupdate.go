// Package portfolioupdate реализует HTTP-обработчик обновления работы портфолио.
package portfolioupdate

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
	"github.com/satans-studio/studio-backend/internal/services/catalog"
)

// Service описывает интерфейс бизнес-логики обновления работы.
type Service interface {
	UpdatePortfolioItem(ctx context.Context, item models.PortfolioItem, id int) error
}

// Handler обрабатывает HTTP-запросы обновления работы.
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
// @Summary Обновление работы портфолио
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор работы"
// @Param request body models.DummyPortfolioItem true "Новые данные работы"
// @Success 200 {object} response.Response "Работа обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 404 {object} response.ErrorResponse "Работа не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/portfolio/{id} [put]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.portfolioupdate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid portfolio item id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid portfolio item id"))
		return
	}

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
	err = h.service.UpdatePortfolioItem(r.Context(), models.PortfolioItem{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		ProjectURL:   req.ProjectURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	}, id)
	if err != nil {
		if errors.Is(err, catalog.ErrPortfolioItemNotFound) {
			log.Error("portfolio item not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("portfolio item not found"))
			return
		}
		log.Error("failed to update portfolio item", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update portfolio item"))
		return
	}

	log.Info("portfolio item updated", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "portfolio item updated successfully",
	}))
}
