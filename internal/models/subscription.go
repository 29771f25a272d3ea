package models

import "time"

// Subscription представляет оплаченную подписку пользователя на пакет услуг.
// Запись создается только после успешной проверки подписи платежа.
type Subscription struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	PackageName   string    `json:"package_name"`
	Amount        int       `json:"amount"`
	Status        string    `json:"status"` // active или expired
	StartDate     time.Time `json:"start_date"`
	ValidUntil    time.Time `json:"valid_until"`
	TransactionID string    `json:"transaction_id"`
}

// SubscriptionInfo подписка вместе с данными владельца, для списков администратора.
type SubscriptionInfo struct {
	Subscription
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Receipt платежная квитанция, неизменяемая запись аудита.
type Receipt struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	TransactionID  string    `json:"transaction_id"`
	PackageName    string    `json:"package_name"`
	Amount         int       `json:"amount"`
	PaymentGateway string    `json:"payment_gateway"`
	PaymentDate    time.Time `json:"payment_date"`
}

// ReceiptInfo квитанция вместе с именем и почтой владельца.
type ReceiptInfo struct {
	Receipt
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
