// Package portfoliodelete реализует HTTP-обработчик удаления работы из портфолио.
package portfoliodelete

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
	"github.com/satans-studio/studio-backend/internal/services/catalog"
)

// Service описывает интерфейс бизнес-логики удаления работы.
type Service interface {
	DeletePortfolioItem(ctx context.Context, id int) error
}

// Handler обрабатывает HTTP-запросы удаления работы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление работы из портфолио
// @Tags Admin
// @Produce  json
// @Param id path int true "Идентификатор работы"
// @Success 200 {object} response.Response "Работа удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 404 {object} response.ErrorResponse "Работа не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/portfolio/{id} [delete]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.portfoliodelete"

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

	if err := h.service.DeletePortfolioItem(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrPortfolioItemNotFound) {
			log.Error("portfolio item not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("portfolio item not found"))
			return
		}
		log.Error("failed to delete portfolio item", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete portfolio item"))
		return
	}

	log.Info("portfolio item deleted", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "portfolio item deleted successfully",
	}))
}
