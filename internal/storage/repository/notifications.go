package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satans-studio/studio-backend/internal/models"
)

// ListNotifications возвращает последние limit уведомлений администратора.
func (s *Storage) ListNotifications(ctx context.Context, limit int) ([]*models.AdminNotification, error) {
	const op = "storage.ListNotifications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, type, message, user_id, created_at, read
			  FROM admin_notifications
			  ORDER BY created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AdminNotification
	for rows.Next() {
		var n models.AdminNotification
		var userID sql.NullInt64
		if err = rows.Scan(&n.ID, &n.Type, &n.Message, &userID, &n.CreatedAt, &n.Read); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if userID.Valid {
			v := int(userID.Int64)
			n.UserID = &v
		}
		result = append(result, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkNotificationRead помечает уведомление прочитанным.
func (s *Storage) MarkNotificationRead(ctx context.Context, id int) error {
	const op = "storage.MarkNotificationRead"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE admin_notifications SET read = true WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
