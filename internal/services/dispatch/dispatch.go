// Package dispatch публикует письма в очередь отправки.
//
// Публикация выполняется по принципу fire-and-forget: ошибка публикации
// логируется и никогда не доходит до клиента, регистрация или оплата
// не должны падать из-за недоступного брокера.
package dispatch

import (
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/satans-studio/studio-backend/internal/lib/sl"
	"github.com/satans-studio/studio-backend/internal/models"
	"github.com/satans-studio/studio-backend/internal/rabbitmq"
)

// EmailDispatcher публикует EmailMessage в exchange писем.
type EmailDispatcher struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// New создает новый EmailDispatcher.
func New(ch *amqp.Channel, log *slog.Logger) *EmailDispatcher {
	return &EmailDispatcher{ch: ch, log: log}
}

// Dispatch отправляет письмо в очередь. Ошибки только логируются.
func (d *EmailDispatcher) Dispatch(msg models.EmailMessage) {
	if err := rabbitmq.PublishMessage(d.ch, rabbitmq.ExchangeEmails, rabbitmq.EmailRoutingKey, msg); err != nil {
		d.log.Warn("failed to dispatch email",
			slog.String("kind", msg.Kind),
			slog.String("to", msg.To),
			sl.Err(err))
	}
}
