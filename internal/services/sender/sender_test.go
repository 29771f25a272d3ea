package sender

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/satans-studio/studio-backend/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock

	written []byte
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	m.written = append(m.written, p...)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func setupHappyPath(transport *MockTransport, to string) *MockSMTPWriter {
	mockClient := new(MockSMTPClient)
	mockWriter := new(MockSMTPWriter)

	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(mockClient, nil).Once()
	mockClient.On("Mail", "noreply@example.com").Return(nil).Once()
	mockClient.On("Rcpt", to).Return(nil).Once()
	mockClient.On("Data").Return(mockWriter, nil).Once()
	mockWriter.On("Write", mock.AnythingOfType("[]uint8")).Return(100, nil).Once()
	mockWriter.On("Close").Return(nil).Once()
	mockClient.On("Quit").Return(nil).Once()
	mockClient.On("Close").Return(nil).Once()

	return mockWriter
}

func TestHandleEmailMessage(t *testing.T) {
	tests := []struct {
		name         string
		body         []byte
		to           string
		wantContains []string
	}{
		{
			name: "verification email",
			body: []byte(`{"kind":"verification","to":"user@example.com","full_name":"User","verification_code":"123456"}`),
			to:   "user@example.com",
			wantContains: []string{
				"Subject: Verify your email",
				"123456",
				"expires in 10 minutes",
			},
		},
		{
			name: "password reset email",
			body: []byte(`{"kind":"password_reset","to":"user@example.com","full_name":"User","reset_link":"https://example.com/reset-password?token=abc"}`),
			to:   "user@example.com",
			wantContains: []string{
				"Subject: Reset your password",
				"https://example.com/reset-password?token=abc",
				"expire in 1 hour",
			},
		},
		{
			name: "contact notification with reply-to",
			body: []byte(`{"kind":"contact_notification","to":"admin@example.com","reply_to":"client@example.com","full_name":"Client","mobile":"9876543210","service":"Branding","message":"Need a logo"}`),
			to:   "admin@example.com",
			wantContains: []string{
				"Subject: New contact form submission",
				"Reply-To: client@example.com",
				"Need a logo",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			writer := setupHappyPath(transport, tt.to)
			service := NewSenderService(transport, newNoopLogger())

			err := service.HandleEmailMessage(tt.body)
			assert.NoError(t, err)

			msg := string(writer.written)
			for _, want := range tt.wantContains {
				assert.Contains(t, msg, want)
			}
			transport.AssertExpectations(t)
		})
	}
}

func TestHandleEmailMessage_PaymentConfirmation(t *testing.T) {
	transport := new(MockTransport)
	writer := setupHappyPath(transport, "user@example.com")
	service := NewSenderService(transport, newNoopLogger())

	validUntil := time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)
	body := []byte(`{"kind":"payment_confirmation","to":"user@example.com","full_name":"User",` +
		`"package_name":"Premium","amount":15000,"transaction_id":"pay_XYZ",` +
		`"valid_until":"` + validUntil.Format(time.RFC3339) + `"}`)

	err := service.HandleEmailMessage(body)
	assert.NoError(t, err)

	msg := string(writer.written)
	assert.Contains(t, msg, "Subject: Your subscription is active")
	assert.Contains(t, msg, "pay_XYZ")
	assert.Contains(t, msg, "15000 INR")
	assert.Contains(t, msg, "30 Sep 2026")
}

func TestHandleEmailMessage_InvalidJSON(t *testing.T) {
	transport := new(MockTransport)
	service := NewSenderService(transport, newNoopLogger())

	err := service.HandleEmailMessage([]byte(`invalid json`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error unmarshalling message")
	transport.AssertNotCalled(t, "Connect")
}

func TestHandleEmailMessage_UnknownKind(t *testing.T) {
	transport := new(MockTransport)
	service := NewSenderService(transport, newNoopLogger())

	err := service.HandleEmailMessage([]byte(`{"kind":"newsletter","to":"user@example.com"}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown email kind")
	transport.AssertNotCalled(t, "Connect")
}

func TestHandleEmailMessage_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	service := NewSenderService(transport, newNoopLogger())

	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(nil, errors.New("connection error")).Once()

	err := service.HandleEmailMessage([]byte(`{"kind":"verification","to":"user@example.com","verification_code":"123456"}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection error")
}
