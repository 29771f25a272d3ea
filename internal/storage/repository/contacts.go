package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/satans-studio/studio-backend/internal/models"
)

// CreateContactSubmission сохраняет заявку с формы обратной связи вместе
// с уведомлением администратора и возвращает созданную запись.
func (s *Storage) CreateContactSubmission(ctx context.Context, sub models.ContactSubmission, notificationMsg string) (*models.ContactSubmission, error) {
	const op = "storage.CreateContactSubmission"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	created := sub
	query := `INSERT INTO contact_submissions (full_name, email, mobile, service, message)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, status, submitted_at`
	if err = tx.QueryRowContext(ctx, query,
		sub.FullName, sub.Email, sub.Mobile, sub.Service, sub.Message).
		Scan(&created.ID, &created.Status, &created.SubmittedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO admin_notifications (type, message)
			 VALUES ('contact', $1)`
	if _, err = tx.ExecContext(ctx, query, notificationMsg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ListContacts возвращает все заявки, новые первыми.
func (s *Storage) ListContacts(ctx context.Context) ([]*models.ContactSubmission, error) {
	const op = "storage.ListContacts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, email, mobile, service, message, status, submitted_at
			  FROM contact_submissions
			  ORDER BY submitted_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ContactSubmission
	for rows.Next() {
		var c models.ContactSubmission
		if err = rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Mobile,
			&c.Service, &c.Message, &c.Status, &c.SubmittedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetContactStatus возвращает текущий статус заявки.
func (s *Storage) GetContactStatus(ctx context.Context, id int) (string, error) {
	const op = "storage.GetContactStatus"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var status string
	query := `SELECT status FROM contact_submissions WHERE id = $1`
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return status, nil
}

// UpdateContactStatus переводит заявку из статуса current в status и
// возвращает обновлённую запись. Текущий статус проверяется в самом UPDATE:
// если запись отсутствует или статус уже изменён параллельным запросом,
// возвращается ErrNotFound и запись не трогается.
func (s *Storage) UpdateContactStatus(ctx context.Context, id int, status, current string) (*models.ContactSubmission, error) {
	const op = "storage.UpdateContactStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE contact_submissions
			  SET status = $1
			  WHERE id = $2 AND status = $3
			  RETURNING id, full_name, email, mobile, service, message, status, submitted_at`
	var c models.ContactSubmission
	row := s.DB.QueryRowContext(ctx, query, status, id, current)
	if err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.Mobile,
		&c.Service, &c.Message, &c.Status, &c.SubmittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
