package models

import "time"

// Типы писем, публикуемых в очередь отправки.
const (
	EmailKindVerification        = "verification"
	EmailKindPasswordReset       = "password_reset"
	EmailKindPaymentConfirmation = "payment_confirmation"
	EmailKindContactNotification = "contact_notification"
)

// EmailMessage сообщение для сервиса отправки писем.
// Публикуется в очередь RabbitMQ и потребляется воркером отправки,
// поэтому все поля сериализуются в JSON.
type EmailMessage struct {
	Kind     string `json:"kind"`
	To       string `json:"to"`
	ReplyTo  string `json:"reply_to,omitempty"`
	FullName string `json:"full_name,omitempty"`

	// Поля письма с кодом подтверждения
	VerificationCode string `json:"verification_code,omitempty"`

	// Поля письма со ссылкой сброса пароля
	ResetLink string `json:"reset_link,omitempty"`

	// Поля письма о подключении подписки
	PackageName   string    `json:"package_name,omitempty"`
	Amount        int       `json:"amount,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	ValidUntil    time.Time `json:"valid_until,omitempty"`

	// Поля уведомления администратора о новой заявке
	Mobile  string `json:"mobile,omitempty"`
	Service string `json:"service,omitempty"`
	Message string `json:"message,omitempty"`
}
