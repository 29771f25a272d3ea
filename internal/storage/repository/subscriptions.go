package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/satans-studio/studio-backend/internal/models"
)

// ActivateSubscription выполняет активацию подписки одной транзакцией:
// вставляет строку подписки, квитанцию и уведомление администратора.
// Ограничение уникальности transaction_id делает повторные callback-и шлюза
// безопасными: повторная активация завершается ErrDuplicate без записей.
func (s *Storage) ActivateSubscription(ctx context.Context, sub models.Subscription, notificationMsg string) (*models.Subscription, error) {
	const op = "storage.ActivateSubscription"
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
	query := `INSERT INTO subscriptions (user_id, package_name, amount, status,
			      start_date, valid_until, transaction_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		sub.UserID, sub.PackageName, sub.Amount, sub.Status,
		sub.StartDate, sub.ValidUntil, sub.TransactionID).Scan(&created.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO payment_receipts (user_id, transaction_id, package_name, amount, payment_gateway)
			 VALUES ($1, $2, $3, $4, 'razorpay')`
	if _, err = tx.ExecContext(ctx, query,
		sub.UserID, sub.TransactionID, sub.PackageName, sub.Amount); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO admin_notifications (type, message, user_id)
			 VALUES ('subscription', $1, $2)`
	if _, err = tx.ExecContext(ctx, query, notificationMsg, sub.UserID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetReceipt возвращает квитанцию по transaction_id, только если она
// принадлежит запрашивающему пользователю.
func (s *Storage) GetReceipt(ctx context.Context, userID int, transactionID string) (*models.ReceiptInfo, error) {
	const op = "storage.GetReceipt"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.user_id, r.transaction_id, r.package_name, r.amount,
			      r.payment_gateway, r.payment_date, u.full_name, u.email
			  FROM payment_receipts r
			  JOIN users u ON r.user_id = u.id
			  WHERE r.transaction_id = $1 AND r.user_id = $2`
	var receipt models.ReceiptInfo
	row := s.DB.QueryRowContext(ctx, query, transactionID, userID)
	if err := row.Scan(&receipt.ID, &receipt.UserID, &receipt.TransactionID,
		&receipt.PackageName, &receipt.Amount, &receipt.PaymentGateway,
		&receipt.PaymentDate, &receipt.FullName, &receipt.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &receipt, nil
}

// ListSubscriptions возвращает активные подписки вместе с данными владельцев,
// новые записи первыми.
func (s *Storage) ListSubscriptions(ctx context.Context) ([]*models.SubscriptionInfo, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_id, s.package_name, s.amount, s.status,
			      s.start_date, s.valid_until, s.transaction_id, u.full_name, u.email
			  FROM subscriptions s
			  JOIN users u ON s.user_id = u.id
			  WHERE s.status = 'active'
			  ORDER BY s.start_date DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionInfo
	for rows.Next() {
		var sub models.SubscriptionInfo
		if err = rows.Scan(&sub.ID, &sub.UserID, &sub.PackageName, &sub.Amount,
			&sub.Status, &sub.StartDate, &sub.ValidUntil, &sub.TransactionID,
			&sub.FullName, &sub.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
