// Package receipt реализует HTTP-обработчик выдачи квитанции об оплате.
package receipt

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/satans-studio/studio-backend/internal/http/middlewarectx"
	"github.com/satans-studio/studio-backend/internal/http/response"
	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/services/payment"
)

// Service описывает интерфейс бизнес-логики выдачи квитанций.
type Service interface {
	GetReceipt(ctx context.Context, userID int, transactionID string) (*models.ReceiptInfo, error)
}

// Handler обрабатывает HTTP-запросы квитанций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Квитанция об оплате
// @Description Возвращает квитанцию по идентификатору транзакции, если она принадлежит пользователю.
// @Tags Payments
// @Produce  json
// @Param transactionID path string true "Идентификатор транзакции"
// @Success 200 {object} response.Response "Квитанция"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Квитанция не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /payment/receipt/{transactionID} [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.receipt"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		log.Error("transaction id is empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("transaction id is required"))
		return
	}

	receipt, err := h.service.GetReceipt(r.Context(), userID, transactionID)
	if err != nil {
		if errors.Is(err, payment.ErrReceiptNotFound) {
			log.Error("receipt not found", slog.String("transaction_id", transactionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("receipt not found"))
			return
		}
		log.Error("failed to get receipt", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get receipt"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(receipt))
}
