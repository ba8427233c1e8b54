package rabbitmq

import (
	"github.com/rabbitmq/amqp091-go"
)

const (
	RequestEventExchange = "product_request_exchange"
	NotificationQueue    = "product_request_notification_queue"
)

var notificationBindings = []string{"product_request.#", "stock.#"}

// declareTopology makes the exchange, queue and bindings exist; it is safe to call from
// both publisher and consumer.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		RequestEventExchange, // name
		"topic",              // type
		true,                 // durable
		false,                // auto-delete
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		NotificationQueue, // name
		true,              // durable
		false,             // auto-delete
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return err
	}

	for _, key := range notificationBindings {
		if err := channel.QueueBind(NotificationQueue, key, RequestEventExchange, false, nil); err != nil {
			return err
		}
	}
	return nil
}

func dial(url string) (*amqp091.Connection, *amqp091.Channel, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}
