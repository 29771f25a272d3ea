// Package createorder реализует HTTP-обработчик создания заказа в платежном шлюзе.
package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/satans-studio/studio-backend/internal/http/middlewarectx"
	"github.com/satans-studio/studio-backend/internal/http/response"
	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/services/payment"
)

// Request — структура входных данных для создания заказа.
type Request struct {
	PackageName string `json:"package_name" validate:"required"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
}

// Service описывает интерфейс бизнес-логики создания заказа.
type Service interface {
	CreateOrder(ctx context.Context, userID int, packageName string, amount int) (*payment.OrderDetails, error)
}

// Handler обрабатывает HTTP-запросы создания заказа.
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
// @Summary Создание заказа на оплату
// @Description Создает заказ в Razorpay и возвращает данные для открытия checkout-виджета.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body Request true "Пакет услуг и сумма в рупиях"
// @Success 200 {object} response.Response "Данные заказа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка платежного шлюза"
// @Router /payment/create-order [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.createorder"

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

	order, err := h.service.CreateOrder(r.Context(), userID, req.PackageName, req.Amount)
	if err != nil {
		log.Error("failed to create order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create payment order"))
		return
	}

	log.Info("order created", slog.String("order_id", order.OrderID))
	render.JSON(w, r, response.StatusOKWithData(order))
}
