// Package contact содержит логику обработки заявок с формы обратной связи.
package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/satans-studio/studio-backend/internal/models"
)

// ContactRepository описывает контракт хранилища заявок.
type ContactRepository interface {
	CreateContactSubmission(ctx context.Context, sub models.ContactSubmission, notificationMsg string) (*models.ContactSubmission, error)
}

// Dispatcher отправляет письма в очередь доставки, не блокируя запрос.
type Dispatcher interface {
	Dispatch(msg models.EmailMessage)
}

// ContactService сохраняет заявку, создает уведомление администратора
// и отправляет ему письмо с Reply-To на почту отправителя.
type ContactService struct {
	repo       ContactRepository
	dispatcher Dispatcher
	adminEmail string
	log        *slog.Logger
}

// New создает новый экземпляр ContactService.
func New(repo ContactRepository, dispatcher Dispatcher, adminEmail string, log *slog.Logger) *ContactService {
	return &ContactService{
		repo:       repo,
		dispatcher: dispatcher,
		adminEmail: adminEmail,
		log:        log,
	}
}

// Submit сохраняет заявку и уведомляет администратора.
func (s *ContactService) Submit(ctx context.Context, sub models.ContactSubmission) (*models.ContactSubmission, error) {
	const op = "contact.Submit"

	notificationMsg := fmt.Sprintf("New contact form from %s - %s", sub.FullName, sub.Service)
	created, err := s.repo.CreateContactSubmission(ctx, sub, notificationMsg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.dispatcher.Dispatch(models.EmailMessage{
		Kind:     models.EmailKindContactNotification,
		To:       s.adminEmail,
		ReplyTo:  sub.Email,
		FullName: sub.FullName,
		Mobile:   sub.Mobile,
		Service:  sub.Service,
		Message:  sub.Message,
	})
	return created, nil
}
