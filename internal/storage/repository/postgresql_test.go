package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/satans-studio/studio-backend/internal/migrations"
	"github.com/satans-studio/studio-backend/internal/models"
)

func setupStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, storage *Storage, email string) int {
	code := "123456"
	id, err := storage.CreateUser(context.Background(), models.User{
		FullName:         "Test User",
		Email:            email,
		Mobile:           "9876543210",
		PasswordHash:     "$2a$10$hashhashhashhashhashha",
		VerificationCode: &code,
	})
	require.NoError(t, err)
	return id
}

func TestUserLifecycle(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := createTestUser(t, storage, "user@example.com")
	require.Greater(t, id, 0)

	user, err := storage.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.False(t, user.EmailVerified)
	require.NotNil(t, user.VerificationCode)
	assert.Equal(t, "123456", *user.VerificationCode)

	// повторная регистрация на ту же почту
	_, err = storage.CreateUser(ctx, models.User{
		FullName:     "Another",
		Email:        "user@example.com",
		Mobile:       "9876543211",
		PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	// неверный код не подтверждает почту
	err = storage.MarkEmailVerified(ctx, "user@example.com", "000000")
	assert.ErrorIs(t, err, ErrNotFound)

	err = storage.MarkEmailVerified(ctx, "user@example.com", "123456")
	require.NoError(t, err)

	user, err = storage.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
	assert.Nil(t, user.VerificationCode, "код очищается после подтверждения")

	_, err = storage.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetTokenFlow(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := createTestUser(t, storage, "user@example.com")

	err := storage.SetResetToken(ctx, "user@example.com", "valid-token", time.Now().Add(time.Hour))
	require.NoError(t, err)

	user, err := storage.GetUserByResetToken(ctx, "valid-token")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	// просроченный токен неотличим от несуществующего
	err = storage.SetResetToken(ctx, "user@example.com", "stale-token", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = storage.GetUserByResetToken(ctx, "stale-token")
	assert.ErrorIs(t, err, ErrNotFound)

	err = storage.UpdatePassword(ctx, id, "$2a$10$newhashnewhashnewhashh")
	require.NoError(t, err)
	_, err = storage.GetUserByResetToken(ctx, "stale-token")
	assert.ErrorIs(t, err, ErrNotFound, "токен очищается после смены пароля")

	err = storage.SetResetToken(ctx, "missing@example.com", "token", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivateSubscription(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, storage, "payer@example.com")

	start := time.Now().UTC()
	sub := models.Subscription{
		UserID:        userID,
		PackageName:   "Premium",
		Amount:        15000,
		Status:        "active",
		StartDate:     start,
		ValidUntil:    start.AddDate(0, 1, 0),
		TransactionID: "pay_XYZ",
	}

	created, err := storage.ActivateSubscription(ctx, sub, "New subscription")
	require.NoError(t, err)
	assert.Greater(t, created.ID, 0)

	// повторный callback шлюза по тому же платежу
	_, err = storage.ActivateSubscription(ctx, sub, "New subscription")
	assert.ErrorIs(t, err, ErrDuplicate)

	receipt, err := storage.GetReceipt(ctx, userID, "pay_XYZ")
	require.NoError(t, err)
	assert.Equal(t, "Premium", receipt.PackageName)
	assert.Equal(t, "razorpay", receipt.PaymentGateway)
	assert.Equal(t, "payer@example.com", receipt.Email)

	// чужая квитанция недоступна
	otherID := createTestUser(t, storage, "other@example.com")
	_, err = storage.GetReceipt(ctx, otherID, "pay_XYZ")
	assert.ErrorIs(t, err, ErrNotFound)

	subs, err := storage.ListSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "pay_XYZ", subs[0].TransactionID)

	notifications, err := storage.ListNotifications(ctx, 50)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "subscription", notifications[0].Type)
	assert.False(t, notifications[0].Read)

	profile, err := storage.GetProfile(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, profile.PackageName)
	assert.Equal(t, "Premium", *profile.PackageName)
}

func TestContactSubmissions(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	created, err := storage.CreateContactSubmission(ctx, models.ContactSubmission{
		FullName: "Client",
		Email:    "client@example.com",
		Mobile:   "9876543210",
		Service:  "Branding",
		Message:  "Need a logo",
	}, "New contact form from Client - Branding")
	require.NoError(t, err)
	assert.Greater(t, created.ID, 0)
	assert.Equal(t, models.ContactStatusPending, created.Status)
	assert.False(t, created.SubmittedAt.IsZero())

	status, err := storage.GetContactStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusPending, status)

	updated, err := storage.UpdateContactStatus(ctx, created.ID,
		models.ContactStatusContacted, models.ContactStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusContacted, updated.Status)

	// UPDATE по устаревшему ожидаемому статусу не проходит и не меняет запись
	_, err = storage.UpdateContactStatus(ctx, created.ID,
		models.ContactStatusResolved, models.ContactStatusPending)
	assert.ErrorIs(t, err, ErrNotFound)
	status, err = storage.GetContactStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusContacted, status)

	_, err = storage.UpdateContactStatus(ctx, 9999,
		models.ContactStatusContacted, models.ContactStatusPending)
	assert.ErrorIs(t, err, ErrNotFound)

	contacts, err := storage.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	notifications, err := storage.ListNotifications(ctx, 50)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "contact", notifications[0].Type)

	err = storage.MarkNotificationRead(ctx, notifications[0].ID)
	require.NoError(t, err)
	err = storage.MarkNotificationRead(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogPackages(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	visible, err := storage.CreatePackage(ctx, models.Package{
		Name:         "Premium",
		Description:  "Full branding package",
		Price:        15000,
		DurationDays: 30,
		Features:     []string{"Logo", "Business cards"},
		DisplayOrder: 1,
		IsActive:     true,
	})
	require.NoError(t, err)

	_, err = storage.CreatePackage(ctx, models.Package{
		Name:         "Hidden",
		Price:        5000,
		DurationDays: 30,
		Features:     []string{},
		DisplayOrder: 2,
		IsActive:     false,
	})
	require.NoError(t, err)

	active, err := storage.ListPackages(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Premium", active[0].Name)
	assert.Equal(t, []string{"Logo", "Business cards"}, active[0].Features)

	all, err := storage.ListPackages(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible.Price = 18000
	rows, err := storage.UpdatePackage(ctx, *visible, visible.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	rows, err = storage.UpdatePackage(ctx, *visible, 9999)
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	rows, err = storage.DeletePackage(ctx, visible.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}

func TestCatalogPortfolio(t *testing.T) {
	storage, cleanup := setupStorage(t)
	defer cleanup()
	ctx := context.Background()

	created, err := storage.CreatePortfolioItem(ctx, models.PortfolioItem{
		Title:        "Cafe rebrand",
		Description:  "Full identity",
		ImageURL:     "https://cdn.example.com/cafe.png",
		Category:     "branding",
		ProjectURL:   "https://example.com/cafe",
		DisplayOrder: 1,
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, 0)
	assert.False(t, created.CreatedAt.IsZero())

	items, err := storage.ListPortfolio(ctx, true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cafe rebrand", items[0].Title)

	created.IsActive = false
	rows, err := storage.UpdatePortfolioItem(ctx, *created, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	items, err = storage.ListPortfolio(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, items)

	rows, err = storage.DeletePortfolioItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}
