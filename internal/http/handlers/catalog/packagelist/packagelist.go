// Package packagelist реализует HTTP-обработчик публичного списка пакетов услуг.
package packagelist

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

// Service описывает интерфейс бизнес-логики публичного каталога.
type Service interface {
	ListActivePackages(ctx context.Context) ([]*models.Package, error)
}

// Handler обрабатывает HTTP-запросы публичного списка пакетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список пакетов услуг
// @Description Возвращает видимые пакеты услуг для публичной страницы.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} response.Response "Список пакетов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /packages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.packagelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	packages, err := h.service.ListActivePackages(r.Context())
	if err != nil {
		log.Error("failed to list packages", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list packages"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(packages))
}
