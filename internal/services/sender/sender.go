// Package sender содержит сервис отправки писем, потребляющий сообщения
// из очереди RabbitMQ и доставляющий их через SMTP.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/lib/smtp"
	"github.com/satans-studio/studio-backend/internal/models"
)

// SenderService рендерит письма по типу сообщения и отправляет их по SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// HandleEmailMessage обрабатывает одно сообщение из очереди отправки.
func (s *SenderService) HandleEmailMessage(body []byte) error {
	var message models.EmailMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject, bodyText, err := renderEmail(message)
	if err != nil {
		return err
	}
	return s.sendEmail(message.To, message.ReplyTo, subject, bodyText)
}

func renderEmail(message models.EmailMessage) (subject, bodyText string, err error) {
	name := message.FullName
	if name == "" {
		name = "there"
	}

	switch message.Kind {
	case models.EmailKindVerification:
		subject = "Verify your email"
		bodyText = fmt.Sprintf("Hello %s!\n\nYour verification code is: %s\n\nThe code expires in 10 minutes.",
			name, message.VerificationCode)
	case models.EmailKindPasswordReset:
		subject = "Reset your password"
		bodyText = fmt.Sprintf("Hello %s!\n\nTo reset your password, follow the link: %s\n\nThe link will expire in 1 hour. If you did not request a reset, ignore this email.",
			name, message.ResetLink)
	case models.EmailKindPaymentConfirmation:
		subject = "Your subscription is active"
		bodyText = fmt.Sprintf("Hello %s!\n\nYour payment for the %s package was successful.\n\nAmount: %d INR\nTransaction ID: %s\nValid until: %s",
			name, message.PackageName, message.Amount, message.TransactionID,
			message.ValidUntil.Format("02 Jan 2006"))
	case models.EmailKindContactNotification:
		subject = "New contact form submission"
		bodyText = fmt.Sprintf("Name: %s\nMobile: %s\nService: %s\n\nMessage:\n%s",
			message.FullName, message.Mobile, message.Service, message.Message)
	default:
		return "", "", fmt.Errorf("unknown email kind: %s", message.Kind)
	}
	return subject, bodyText, nil
}

func (s *SenderService) sendEmail(to, replyTo, subject, bodyText string) error {
	headers := []string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	if replyTo != "" {
		headers = append(headers, "Reply-To: "+replyTo)
	}
	msg := strings.Join(append(headers, "", bodyText), "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}
	if err := client.Rcpt(to); err != nil {
		s.log.Error("Failed to set RCPT TO", "recipient", to, "error", sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to, "kind", subject)
	return nil
}
