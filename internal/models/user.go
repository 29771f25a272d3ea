// Package models содержит доменные структуры сайта студии:
// пользователей, подписки, пакеты услуг, портфолио, заявки с формы
// обратной связи, платежные квитанции и уведомления администратора.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя сайта.
type User struct {
	ID               int        // Уникальный идентификатор пользователя
	FullName         string     // Полное имя
	Email            string     // Электронная почта (уникальная)
	Mobile           string     // Номер телефона
	PasswordHash     string     // Хэш пароля пользователя
	EmailVerified    bool       // Подтверждена ли почта
	VerificationCode *string    // Код подтверждения почты, nil после подтверждения
	ResetToken       *string    // Токен сброса пароля
	ResetExpiry      *time.Time // Срок действия токена сброса
	CreatedAt        time.Time  // Дата регистрации
}

// UserInfo пользователь вместе с данными активной подписки, для списков администратора.
type UserInfo struct {
	ID                 int       `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Mobile             string    `json:"mobile"`
	EmailVerified      bool      `json:"email_verified"`
	CreatedAt          time.Time `json:"created_at"`
	PackageName        *string   `json:"package_name,omitempty"`
	SubscriptionStatus *string   `json:"subscription_status,omitempty"`
}

// Profile объединяет данные пользователя и его текущую активную подписку
// для выдачи на личном кабинете.
type Profile struct {
	ID          int        `json:"id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile"`
	CreatedAt   time.Time  `json:"created_at"`
	PackageName *string    `json:"package_name,omitempty"`
	Status      *string    `json:"status,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	Amount      *int       `json:"amount,omitempty"`
}
