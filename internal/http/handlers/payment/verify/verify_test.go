package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/satans-studio/studio-backend/internal/http/middlewarectx"
	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/services/payment"
)

// Мок сервиса с методом VerifyPayment
type PaymentServiceMock struct {
	mock.Mock
}

func (m *PaymentServiceMock) VerifyPayment(ctx context.Context, userID int,
	orderID, paymentID, signature, packageName string, amount int) (*models.Subscription, error) {
	args := m.Called(ctx, userID, orderID, paymentID, signature, packageName, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestVerifyHandler_ServeHTTP(t *testing.T) {
	paymentMock := new(PaymentServiceMock)
	logger := newNoopLogger()

	handler := New(logger, paymentMock)

	validRequest := Request{
		RazorpayOrderID:   "order_ABC",
		RazorpayPaymentID: "pay_XYZ",
		RazorpaySignature: "deadbeef",
		PackageName:       "Premium",
		Amount:            15000,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		userID         int
		mockSub        *models.Subscription
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:        "valid payment",
			requestBody: validRequest,
			userID:      7,
			mockSub: &models.Subscription{
				ID: 1, UserID: 7, Status: "active", TransactionID: "pay_XYZ",
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "missing user in context",
			requestBody:    validRequest,
			userID:         0,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
			wantStatus:     "Error",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			userID:         7,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "validation error - missing signature",
			requestBody: Request{
				RazorpayOrderID:   "order_ABC",
				RazorpayPaymentID: "pay_XYZ",
				PackageName:       "Premium",
				Amount:            15000,
			},
			userID:         7,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field RazorpaySignature is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "signature mismatch",
			requestBody:    validRequest,
			userID:         7,
			mockErr:        payment.ErrSignatureMismatch,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "payment verification failed",
			wantStatus:     "Error",
		},
		{
			name:           "duplicate callback",
			requestBody:    validRequest,
			userID:         7,
			mockErr:        payment.ErrDuplicateTransaction,
			wantStatusCode: http.StatusConflict,
			wantError:      "transaction already processed",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			requestBody:    validRequest,
			userID:         7,
			mockErr:        assert.AnError,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to verify payment",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paymentMock.ExpectedCalls = nil
			paymentMock.Calls = nil

			if tt.mockSub != nil || tt.mockErr != nil {
				paymentMock.On("VerifyPayment", mock.Anything, tt.userID,
					"order_ABC", "pay_XYZ", "deadbeef", "Premium", 15000,
				).Return(tt.mockSub, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/payment/verify", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.userID != 0 {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "active", data["status"])
			}

			paymentMock.AssertExpectations(t)
		})
	}
}
