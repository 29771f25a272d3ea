// Package admin содержит логику административных списков и операций
// над заявками и уведомлениями.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/storage/repository"
)

// Лимит выдачи уведомлений администратора.
const notificationsLimit = 50

// Ошибки бизнес-уровня административных операций.
var (
	// ErrContactNotFound заявка не найдена.
	ErrContactNotFound = errors.New("contact submission not found")
	// ErrNotificationNotFound уведомление не найдено.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrInvalidStatus неизвестный статус заявки.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidStatusTransition попытка вернуть заявку на более ранний статус.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// AdminRepository описывает контракт хранилища для панели администратора.
type AdminRepository interface {
	ListUsers(ctx context.Context) ([]*models.UserInfo, error)
	ListSubscriptions(ctx context.Context) ([]*models.SubscriptionInfo, error)
	ListContacts(ctx context.Context) ([]*models.ContactSubmission, error)
	GetContactStatus(ctx context.Context, id int) (string, error)
	UpdateContactStatus(ctx context.Context, id int, status, current string) (*models.ContactSubmission, error)
	ListNotifications(ctx context.Context, limit int) ([]*models.AdminNotification, error)
	MarkNotificationRead(ctx context.Context, id int) error
}

// AdminService реализует операции панели администратора.
type AdminService struct {
	repo AdminRepository
	log  *slog.Logger
}

// New создает новый экземпляр AdminService.
func New(repo AdminRepository, log *slog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

// ListUsers возвращает пользователей с данными активных подписок.
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.UserInfo, error) {
	const op = "admin.ListUsers"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// ListSubscriptions возвращает активные подписки с данными владельцев.
func (s *AdminService) ListSubscriptions(ctx context.Context) ([]*models.SubscriptionInfo, error) {
	const op = "admin.ListSubscriptions"

	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// ListContacts возвращает все заявки с формы обратной связи.
func (s *AdminService) ListContacts(ctx context.Context) ([]*models.ContactSubmission, error) {
	const op = "admin.ListContacts"

	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contacts, nil
}

// AdvanceContactStatus переводит заявку на следующий статус.
// Жизненный цикл строго односторонний: pending -> contacted -> resolved,
// возврат на более ранний статус запрещен.
func (s *AdminService) AdvanceContactStatus(ctx context.Context, id int, status string) (*models.ContactSubmission, error) {
	const op = "admin.AdvanceContactStatus"

	newRank, ok := models.ContactStatusRank(status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetContactStatus(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	currentRank, _ := models.ContactStatusRank(current)
	if newRank <= currentRank {
		return nil, ErrInvalidStatusTransition
	}

	// Прочитанный статус передается в UPDATE как ожидаемый: если
	// параллельный запрос успел перевести заявку дальше, обновление
	// не пройдет и откат статуса невозможен.
	updated, err := s.repo.UpdateContactStatus(ctx, id, status, current)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_, statusErr := s.repo.GetContactStatus(ctx, id)
			switch {
			case statusErr == nil:
				return nil, ErrInvalidStatusTransition
			case errors.Is(statusErr, repository.ErrNotFound):
				return nil, ErrContactNotFound
			default:
				return nil, fmt.Errorf("%s: %w", op, statusErr)
			}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// ListNotifications возвращает последние уведомления администратора.
func (s *AdminService) ListNotifications(ctx context.Context) ([]*models.AdminNotification, error) {
	const op = "admin.ListNotifications"

	notifications, err := s.repo.ListNotifications(ctx, notificationsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return notifications, nil
}

// MarkNotificationRead помечает уведомление прочитанным.
func (s *AdminService) MarkNotificationRead(ctx context.Context, id int) error {
	const op = "admin.MarkNotificationRead"

	if err := s.repo.MarkNotificationRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
