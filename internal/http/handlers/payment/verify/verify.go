// Package verify реализует HTTP-обработчик подтверждения оплаты.
//
// Проверяет подпись callback-а Razorpay и активирует подписку пользователя.
// Повторный callback по уже обработанному платежу завершается статусом 409.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/satans-studio/studio-backend/internal/http/middlewarectx"
	"github.com/satans-studio/studio-backend/internal/http/response"
	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/services/payment"
)

// Request — структура входных данных callback-а оплаты.
type Request struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	PackageName       string `json:"package_name" validate:"required"`
	Amount            int    `json:"amount" validate:"required,gt=0"`
}

// Service описывает интерфейс бизнес-логики подтверждения оплаты.
type Service interface {
	VerifyPayment(ctx context.Context, userID int,
		orderID, paymentID, signature, packageName string, amount int) (*models.Subscription, error)
}

// Handler обрабатывает HTTP-запросы подтверждения оплаты.
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
// @Summary Подтверждение оплаты
// @Description Проверяет подпись Razorpay и активирует подписку на один месяц.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификаторы и подпись платежа"
// @Success 200 {object} response.Response "Подписка активирована"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неверная подпись"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Платеж уже обработан"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /payment/verify [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.verify"

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

	sub, err := h.service.VerifyPayment(r.Context(), userID,
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature,
		req.PackageName, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrSignatureMismatch):
			log.Error("payment signature mismatch", slog.String("order_id", req.RazorpayOrderID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("payment verification failed"))
		case errors.Is(err, payment.ErrDuplicateTransaction):
			log.Error("duplicate payment callback", slog.String("payment_id", req.RazorpayPaymentID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("transaction already processed"))
		default:
			log.Error("failed to verify payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to verify payment"))
		}
		return
	}

	log.Info("subscription activated",
		slog.Int("user_id", userID),
		slog.String("transaction_id", sub.TransactionID))
	render.JSON(w, r, response.StatusOKWithData(sub))
}
