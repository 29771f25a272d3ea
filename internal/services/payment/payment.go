// Package payment содержит логику создания заказа в платежном шлюзе,
// проверки подписи callback-а и активации подписки.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/razorpay"
	"github.com/satans-studio/studio-backend/internal/storage/repository"
)

// Ошибки бизнес-уровня платежного процесса.
var (
	// ErrSignatureMismatch подпись шлюза не совпала, оплата не подтверждена.
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	// ErrDuplicateTransaction повторный callback по уже активированной оплате.
	ErrDuplicateTransaction = errors.New("transaction already processed")
	// ErrReceiptNotFound квитанция не найдена или принадлежит другому пользователю.
	ErrReceiptNotFound = errors.New("receipt not found")
)

// SubscriptionRepository описывает контракт хранилища для активации подписок.
type SubscriptionRepository interface {
	ActivateSubscription(ctx context.Context, sub models.Subscription, notificationMsg string) (*models.Subscription, error)
	GetReceipt(ctx context.Context, userID int, transactionID string) (*models.ReceiptInfo, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// Gateway описывает контракт клиента платежного шлюза.
type Gateway interface {
	CreateOrder(ctx context.Context, req razorpay.CreateOrderRequest) (*razorpay.Order, error)
	KeyID() string
}

// Dispatcher отправляет письма в очередь доставки, не блокируя запрос.
type Dispatcher interface {
	Dispatch(msg models.EmailMessage)
}

// OrderDetails данные для открытия checkout-виджета на фронтенде.
type OrderDetails struct {
	OrderID  string `json:"order_id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// PaymentService связывает платежный шлюз, хранилище подписок и отправку писем.
type PaymentService struct {
	repo       SubscriptionRepository
	gateway    Gateway
	dispatcher Dispatcher
	keySecret  string
	log        *slog.Logger
}

// New создает новый экземпляр PaymentService.
func New(repo SubscriptionRepository, gateway Gateway, dispatcher Dispatcher,
	keySecret string, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:       repo,
		gateway:    gateway,
		dispatcher: dispatcher,
		keySecret:  keySecret,
		log:        log,
	}
}

// CreateOrder запрашивает у шлюза заказ на сумму amount (в рупиях).
// До подтверждения подписи заказ существует только на стороне шлюза.
func (s *PaymentService) CreateOrder(ctx context.Context, userID int, packageName string, amount int) (*OrderDetails, error) {
	const op = "payment.CreateOrder"

	order, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderRequest{
		Amount:   amount * 100, // в пайсах
		Currency: "INR",
		Receipt:  "receipt_" + uuid.NewString(),
		Notes: map[string]string{
			"user_id":      fmt.Sprint(userID),
			"package_name": packageName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &OrderDetails{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

// VerifyPayment проверяет подпись шлюза и активирует подписку.
// Вставка подписки, квитанции и уведомления выполняется одной транзакцией,
// повторный callback по тому же платежу завершается ErrDuplicateTransaction.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID int,
	orderID, paymentID, signature, packageName string, amount int) (*models.Subscription, error) {
	const op = "payment.VerifyPayment"

	if !razorpay.VerifySignature(orderID, paymentID, signature, s.keySecret) {
		return nil, ErrSignatureMismatch
	}

	startDate := time.Now().UTC()
	sub := models.Subscription{
		UserID:        userID,
		PackageName:   packageName,
		Amount:        amount,
		Status:        "active",
		StartDate:     startDate,
		ValidUntil:    startDate.AddDate(0, 1, 0),
		TransactionID: paymentID,
	}
	notificationMsg := fmt.Sprintf("New subscription: %s by user %d", packageName, userID)

	created, err := s.repo.ActivateSubscription(ctx, sub, notificationMsg)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		// подписка уже активна, письмо без данных получателя не отправить
		s.log.Warn("failed to load user for confirmation email", slog.Int("user_id", userID))
		return created, nil
	}
	s.dispatcher.Dispatch(models.EmailMessage{
		Kind:          models.EmailKindPaymentConfirmation,
		To:            user.Email,
		FullName:      user.FullName,
		PackageName:   packageName,
		Amount:        amount,
		TransactionID: paymentID,
		ValidUntil:    created.ValidUntil,
	})
	return created, nil
}

// GetReceipt возвращает квитанцию, если она принадлежит запрашивающему.
func (s *PaymentService) GetReceipt(ctx context.Context, userID int, transactionID string) (*models.ReceiptInfo, error) {
	const op = "payment.GetReceipt"

	receipt, err := s.repo.GetReceipt(ctx, userID, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return receipt, nil
}
