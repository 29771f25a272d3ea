package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/satans-studio/studio-backend/internal/lib/jwt"
	"github.com/satans-studio/studio-backend/internal/lib/password"
	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/storage/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateVerificationCode(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, email, token string, expiry time.Time) error {
	args := m.Called(ctx, email, token, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(msg models.EmailMessage) {
	m.Called(msg)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(repo *MockUserRepository, dispatcher *MockDispatcher, adminHash string) *AuthService {
	maker := jwt.NewJWTMaker("test_secret", time.Hour)
	return New(repo, maker, dispatcher, "admin@example.com", adminHash,
		"https://example.com", newNoopLogger())
}

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	repo.On("GetUserByEmail", mock.Anything, "new@example.com").
		Return(nil, repository.ErrNotFound).Once()
	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("models.User")).
		Return(1, nil).Once()
	dispatcher.On("Dispatch", mock.MatchedBy(func(msg models.EmailMessage) bool {
		return msg.Kind == models.EmailKindVerification &&
			msg.To == "new@example.com" &&
			len(msg.VerificationCode) == 6
	})).Once()

	user, err := service.Register(context.Background(), "New User", "new@example.com", "9876543210", "secret123")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.False(t, user.EmailVerified)
	assert.NotNil(t, user.VerificationCode)

	repo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	repo.On("GetUserByEmail", mock.Anything, "taken@example.com").
		Return(&models.User{ID: 5, Email: "taken@example.com"}, nil).Once()

	_, err := service.Register(context.Background(), "Someone", "taken@example.com", "9876543210", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)

	repo.AssertExpectations(t)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
}

func TestRegister_DuplicateRace(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	repo.On("GetUserByEmail", mock.Anything, "race@example.com").
		Return(nil, repository.ErrNotFound).Once()
	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("models.User")).
		Return(0, repository.ErrDuplicate).Once()

	_, err := service.Register(context.Background(), "Racer", "race@example.com", "9876543210", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_BeforeVerification(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "unverified@example.com").
		Return(&models.User{ID: 2, Email: "unverified@example.com", PasswordHash: hash, EmailVerified: false}, nil).Once()

	_, _, err = service.Login(context.Background(), "unverified@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&models.User{ID: 3, Email: "user@example.com", PasswordHash: hash, EmailVerified: true}, nil).Once()

	token, user, err := service.Login(context.Background(), "user@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3, user.ID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	repo.On("GetUserByEmail", mock.Anything, "missing@example.com").
		Return(nil, repository.ErrNotFound).Once()

	_, _, err := service.Login(context.Background(), "missing@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&models.User{ID: 3, Email: "user@example.com", PasswordHash: hash, EmailVerified: true}, nil).Once()

	_, _, err = service.Login(context.Background(), "user@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyEmail(t *testing.T) {
	tests := []struct {
		name        string
		markErr     error
		expectedErr error
	}{
		{
			name: "success",
		},
		{
			name:        "wrong code",
			markErr:     repository.ErrNotFound,
			expectedErr: ErrInvalidCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			dispatcher := new(MockDispatcher)
			service := newTestService(repo, dispatcher, password.DummyHash)

			repo.On("MarkEmailVerified", mock.Anything, "user@example.com", "123456").
				Return(tt.markErr).Once()
			if tt.markErr == nil {
				repo.On("GetUserByEmail", mock.Anything, "user@example.com").
					Return(&models.User{ID: 3, Email: "user@example.com", EmailVerified: true}, nil).Once()
			}

			token, user, err := service.VerifyEmail(context.Background(), "user@example.com", "123456")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.True(t, user.EmailVerified)
		})
	}
}

func TestAdminLogin(t *testing.T) {
	adminHash, err := password.GetHash("admin_secret")
	require.NoError(t, err)

	tests := []struct {
		name        string
		email       string
		pass        string
		expectedErr error
	}{
		{
			name:  "success",
			email: "admin@example.com",
			pass:  "admin_secret",
		},
		{
			name:        "wrong email",
			email:       "other@example.com",
			pass:        "admin_secret",
			expectedErr: ErrInvalidAdminCredentials,
		},
		{
			name:        "wrong password",
			email:       "admin@example.com",
			pass:        "guess",
			expectedErr: ErrInvalidAdminCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(new(MockUserRepository), new(MockDispatcher), adminHash)

			token, err := service.AdminLogin(context.Background(), tt.email, tt.pass)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestForgotPassword(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	repo.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&models.User{ID: 3, Email: "user@example.com", FullName: "User"}, nil).Once()
	repo.On("SetResetToken", mock.Anything, "user@example.com",
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	dispatcher.On("Dispatch", mock.MatchedBy(func(msg models.EmailMessage) bool {
		return msg.Kind == models.EmailKindPasswordReset &&
			msg.To == "user@example.com" &&
			len(msg.ResetLink) > len("https://example.com/reset-password?token=")
	})).Once()

	err := service.ForgotPassword(context.Background(), "user@example.com")
	require.NoError(t, err)

	repo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	// просроченные и несуществующие токены хранилище отдает одинаково
	repo.On("GetUserByResetToken", mock.Anything, "stale-token").
		Return(nil, repository.ErrNotFound).Once()

	err := service.ResetPassword(context.Background(), "stale-token", "newsecret")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword_Success(t *testing.T) {
	repo := new(MockUserRepository)
	dispatcher := new(MockDispatcher)
	service := newTestService(repo, dispatcher, password.DummyHash)

	repo.On("GetUserByResetToken", mock.Anything, "good-token").
		Return(&models.User{ID: 3, Email: "user@example.com"}, nil).Once()
	repo.On("UpdatePassword", mock.Anything, 3, mock.AnythingOfType("string")).
		Return(nil).Once()

	err := service.ResetPassword(context.Background(), "good-token", "newsecret")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
