// Package portfoliolist реализует HTTP-обработчик публичного списка работ портфолио.
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

// Service описывает интерфейс бизнес-логики публичного портфолио.
type Service interface {
	ListActivePortfolio(ctx context.Context) ([]*models.PortfolioItem, error)
}

// Handler обрабатывает HTTP-запросы публичного списка работ.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список работ портфолио
// @Description Возвращает видимые работы портфолио для публичной страницы.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} response.Response "Список работ"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /portfolio [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.portfoliolist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.ListActivePortfolio(r.Context())
	if err != nil {
		log.Error("failed to list portfolio", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list portfolio"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(items))
}
