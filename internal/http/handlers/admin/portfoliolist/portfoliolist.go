// Package portfoliolist реализует HTTP-обработчик полного списка работ портфолио
// для панели администратора, включая скрытые.
package portfoliolist

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

// Service описывает интерфейс бизнес-логики списка работ.
type Service interface {
	ListAllPortfolio(ctx context.Context) ([]*models.PortfolioItem, error)
}

// Handler обрабатывает HTTP-запросы списка работ.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Полный список работ портфолио
// @Description Возвращает все работы, включая скрытые с публичной страницы.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response "Список работ"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/portfolio [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.portfoliolist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.ListAllPortfolio(r.Context())
	if err != nil {
		log.Error("failed to list portfolio", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list portfolio"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": len(items),
		"items": items,
	}))
}
