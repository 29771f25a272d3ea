// Package packagelist реализует HTTP-обработчик полного списка пакетов услуг
// для панели администратора, включая скрытые.
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

// Service описывает интерфейс бизнес-логики списка пакетов.
type Service interface {
	ListAllPackages(ctx context.Context) ([]*models.Package, error)
}

// Handler обрабатывает HTTP-запросы списка пакетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Полный список пакетов услуг
// @Description Возвращает все пакеты услуг, включая скрытые с публичной страницы.
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response "Список пакетов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступ только администратору"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/packages [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.packagelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	packages, err := h.service.ListAllPackages(r.Context())
	if err != nil {
		log.Error("failed to list packages", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list packages"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":    len(packages),
		"packages": packages,
	}))
}
