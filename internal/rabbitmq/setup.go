package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// ExchangeEmails exchange, в который публикуются письма на отправку.
const ExchangeEmails = "emails"

// EmailQueue очередь писем, потребляемая воркером отправки.
const EmailQueue = "email_outbox_queue"

// EmailRoutingKey ключ маршрутизации писем.
const EmailRoutingKey = "outbox"

// QueueConfig связка очереди и ключа маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEmailQueues возвращает очереди, необходимые для доставки писем.
func GetEmailQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: EmailQueue, RoutingKey: EmailRoutingKey},
	}
}

// SetupChannel открывает канал, объявляет exchange и привязывает очереди.
func SetupChannel(conn *amqp.Connection, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeEmails,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			ExchangeEmails,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
