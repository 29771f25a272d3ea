package models

import "time"

// Статусы заявки с формы обратной связи. Переход разрешен только вперед:
// pending -> contacted -> resolved.
const (
	ContactStatusPending   = "pending"
	ContactStatusContacted = "contacted"
	ContactStatusResolved  = "resolved"
)

// ContactSubmission заявка, отправленная через публичную форму обратной связи.
type ContactSubmission struct {
	ID          int       `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Service     string    `json:"service"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ContactStatusRank возвращает порядковый номер статуса в жизненном цикле
// заявки и false для неизвестного статуса.
func ContactStatusRank(status string) (int, bool) {
	switch status {
	case ContactStatusPending:
		return 0, true
	case ContactStatusContacted:
		return 1, true
	case ContactStatusResolved:
		return 2, true
	}
	return 0, false
}

// AdminNotification уведомление в панели администратора.
type AdminNotification struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"` // contact или subscription
	Message   string    `json:"message"`
	UserID    *int      `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}
