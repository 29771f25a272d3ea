// Package auth содержит логику бизнес-уровня для регистрации, подтверждения
// почты, входа и восстановления пароля.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/satans-studio/studio-backend/internal/lib/jwt"
	"github.com/satans-studio/studio-backend/internal/lib/password"
	"github.com/satans-studio/studio-backend/internal/lib/random"
	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/storage/repository"
)

// Ошибки бизнес-уровня, по которым обработчики выбирают статус ответа.
var (
	// ErrEmailTaken почта уже зарегистрирована.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCode код подтверждения не совпал.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrInvalidCredentials общая ошибка входа: не раскрывает, существует ли почта.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotFound почта не найдена.
	ErrEmailNotFound = errors.New("email not found")
	// ErrInvalidResetToken токен сброса не найден или просрочен.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrInvalidAdminCredentials неверные учетные данные администратора.
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")
)

// Срок действия токена сброса пароля.
const resetTokenTTL = time.Hour

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (int, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, email, code string) error
	UpdateVerificationCode(ctx context.Context, email, code string) error
	SetResetToken(ctx context.Context, email, token string, expiry time.Time) error
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
	GetProfile(ctx context.Context, userID int) (*models.Profile, error)
}

// Dispatcher отправляет письма в очередь доставки, не блокируя запрос.
type Dispatcher interface {
	Dispatch(msg models.EmailMessage)
}

// AuthService отвечает за регистрацию, подтверждение почты, вход
// и восстановление пароля.
type AuthService struct {
	users       UserRepository
	jwtMaker    jwt.Maker
	dispatcher  Dispatcher
	adminEmail  string
	adminHash   string
	frontendURL string
	log         *slog.Logger
}

// New создает новый экземпляр AuthService.
func New(users UserRepository, jwtMaker jwt.Maker, dispatcher Dispatcher,
	adminEmail, adminHash, frontendURL string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:       users,
		jwtMaker:    jwtMaker,
		dispatcher:  dispatcher,
		adminEmail:  adminEmail,
		adminHash:   adminHash,
		frontendURL: frontendURL,
		log:         log,
	}
}

// Register создает неподтвержденного пользователя и отправляет код на почту.
func (s *AuthService) Register(ctx context.Context, fullName, email, mobile, rawPassword string) (*models.User, error) {
	const op = "auth.Register"

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	code, err := random.VerificationCode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		FullName:         fullName,
		Email:            email,
		Mobile:           mobile,
		PasswordHash:     hashed,
		VerificationCode: &code,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		// гонка двух одновременных регистраций на одну почту
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id
	user.CreatedAt = time.Now().UTC()

	s.dispatcher.Dispatch(models.EmailMessage{
		Kind:             models.EmailKindVerification,
		To:               email,
		FullName:         fullName,
		VerificationCode: code,
	})
	return &user, nil
}

// VerifyEmail подтверждает почту по коду и выпускает токен сессии.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (string, *models.User, error) {
	const op = "auth.VerifyEmail"

	if err := s.users.MarkEmailVerified(ctx, email, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCode
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.jwtMaker.GenerateUserToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ResendCode генерирует новый код подтверждения и отправляет его повторно.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	const op = "auth.ResendCode"

	code, err := random.VerificationCode()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdateVerificationCode(ctx, email, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.dispatcher.Dispatch(models.EmailMessage{
		Kind:             models.EmailKindVerification,
		To:               email,
		VerificationCode: code,
	})
	return nil
}

// Login проверяет пароль подтвержденного пользователя и выпускает токен сессии.
// Любая причина отказа сводится к ErrInvalidCredentials, чтобы ответ
// не позволял перебирать зарегистрированные почты.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.EmailVerified {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateUserToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// AdminLogin сверяет учетные данные с единственной настроенной учеткой
// администратора. Сравнение bcrypt выполняется и при несовпадении почты,
// чтобы время ответа не отличалось.
func (s *AuthService) AdminLogin(_ context.Context, email, rawPassword string) (string, error) {
	const op = "auth.AdminLogin"

	emailOK := email == s.adminEmail
	hashToCheck := password.DummyHash
	if emailOK {
		hashToCheck = s.adminHash
	}
	passwordErr := password.CompareHash(hashToCheck, rawPassword)
	if !emailOK || passwordErr != nil {
		return "", ErrInvalidAdminCredentials
	}

	token, err := s.jwtMaker.GenerateAdminToken(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ForgotPassword создает токен сброса пароля и отправляет ссылку на почту.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.ForgotPassword"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEmailNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := random.ResetToken()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expiry := time.Now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, email, token, expiry); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.dispatcher.Dispatch(models.EmailMessage{
		Kind:      models.EmailKindPasswordReset,
		To:        email,
		FullName:  user.FullName,
		ResetLink: s.frontendURL + "/reset-password?token=" + token,
	})
	return nil
}

// ResetPassword меняет пароль по непросроченному токену сброса и очищает токен.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "auth.ResetPassword"

	user, err := s.users.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Profile возвращает данные пользователя вместе с активной подпиской.
func (s *AuthService) Profile(ctx context.Context, userID int) (*models.Profile, error) {
	const op = "auth.Profile"

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}
