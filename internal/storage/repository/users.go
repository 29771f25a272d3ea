package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/satans-studio/studio-backend/internal/models"
)

// CreateUser сохраняет нового неподтвержденного пользователя и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO users (full_name, email, mobile, password_hash,
			      verification_code, email_verified)
			  VALUES ($1, $2, $3, $4, $5, false)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.FullName, user.Email, user.Mobile, user.PasswordHash,
		user.VerificationCode).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по его почте.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, email, mobile, password_hash, email_verified,
			      verification_code, reset_token, reset_expiry, created_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUserByID возвращает пользователя по его ID.
func (s *Storage) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, email, mobile, password_hash, email_verified,
			      verification_code, reset_token, reset_expiry, created_at
			  FROM users
			  WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

// GetUserByResetToken возвращает пользователя по непросроченному токену сброса пароля.
func (s *Storage) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	const op = "storage.GetUserByResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, email, mobile, password_hash, email_verified,
			      verification_code, reset_token, reset_expiry, created_at
			  FROM users
			  WHERE reset_token = $1 AND reset_expiry > NOW()`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, token), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var verificationCode, resetToken sql.NullString
	var resetExpiry sql.NullTime
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Mobile, &u.PasswordHash,
		&u.EmailVerified, &verificationCode, &resetToken, &resetExpiry, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if verificationCode.Valid {
		u.VerificationCode = &verificationCode.String
	}
	if resetToken.Valid {
		u.ResetToken = &resetToken.String
	}
	if resetExpiry.Valid {
		u.ResetExpiry = &resetExpiry.Time
	}
	return u, nil
}

// MarkEmailVerified подтверждает почту пользователя, если код совпадает,
// и очищает код подтверждения. Возвращает ErrNotFound при несовпадении.
func (s *Storage) MarkEmailVerified(ctx context.Context, email, code string) error {
	const op = "storage.MarkEmailVerified"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET email_verified = true, verification_code = NULL
			  WHERE email = $1 AND verification_code = $2`
	result, err := s.DB.ExecContext(ctx, query, email, code)
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

// UpdateVerificationCode сохраняет новый код подтверждения почты.
func (s *Storage) UpdateVerificationCode(ctx context.Context, email, code string) error {
	const op = "storage.UpdateVerificationCode"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET verification_code = $1
			  WHERE email = $2`
	result, err := s.DB.ExecContext(ctx, query, code, email)
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

// SetResetToken сохраняет токен сброса пароля и срок его действия.
func (s *Storage) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	const op = "storage.SetResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET reset_token = $1, reset_expiry = $2
			  WHERE email = $3`
	result, err := s.DB.ExecContext(ctx, query, token, expiry, email)
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

// UpdatePassword сохраняет новый хэш пароля и очищает токен сброса.
func (s *Storage) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1, reset_token = NULL, reset_expiry = NULL
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, userID)
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

// GetProfile возвращает данные пользователя вместе с его активной подпиской.
func (s *Storage) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.full_name, u.email, u.mobile, u.created_at,
			      s.package_name, s.status, s.start_date, s.valid_until, s.amount
			  FROM users u
			  LEFT JOIN subscriptions s ON u.id = s.user_id AND s.status = 'active'
			  WHERE u.id = $1`
	p := &models.Profile{}
	var packageName, status sql.NullString
	var startDate, validUntil sql.NullTime
	var amount sql.NullInt64
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Mobile, &p.CreatedAt,
		&packageName, &status, &startDate, &validUntil, &amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if packageName.Valid {
		p.PackageName = &packageName.String
	}
	if status.Valid {
		p.Status = &status.String
	}
	if startDate.Valid {
		p.StartDate = &startDate.Time
	}
	if validUntil.Valid {
		p.ValidUntil = &validUntil.Time
	}
	if amount.Valid {
		v := int(amount.Int64)
		p.Amount = &v
	}
	return p, nil
}

// ListUsers возвращает всех пользователей с данными их активных подписок,
// новые записи первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.UserInfo, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.id, u.full_name, u.email, u.mobile, u.email_verified, u.created_at,
			      s.package_name, s.status
			  FROM users u
			  LEFT JOIN subscriptions s ON u.id = s.user_id AND s.status = 'active'
			  ORDER BY u.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserInfo
	for rows.Next() {
		var u models.UserInfo
		var packageName, status sql.NullString
		if err = rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Mobile,
			&u.EmailVerified, &u.CreatedAt, &packageName, &status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if packageName.Valid {
			u.PackageName = &packageName.String
		}
		if status.Valid {
			u.SubscriptionStatus = &status.String
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
