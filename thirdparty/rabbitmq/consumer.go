package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/muhammadheryan/telecom-distribution/model"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventHandler receives decoded lifecycle events.
type EventHandler interface {
	HandleRequestEvent(ctx context.Context, evt model.RequestEvent) error
}

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	handler EventHandler
	metrics *metrics.Metrics
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeDrop
	outcomeRequeue
)

func NewConsumer(url string, handler EventHandler) (*Consumer, error) {
	conn, channel, err := dial(url)
	if err != nil {
		return nil, err
	}
	return &Consumer{conn: conn, channel: channel, handler: handler}, nil
}

func (c *Consumer) WithMetrics(m *metrics.Metrics) *Consumer {
	c.metrics = m
	return c
}

func (c *Consumer) Start(ctx context.Context) error {
	// process one message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		NotificationQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("[Consumer] delivery channel closed")
					return
				}
				switch c.process(ctx, msg.Body) {
				case outcomeAck:
					_ = msg.Ack(false)
				case outcomeDrop:
					_ = msg.Nack(false, false)
				case outcomeRequeue:
					// redelivered messages that fail again are dropped to avoid a hot loop
					_ = msg.Nack(false, !msg.Redelivered)
				}
			}
		}
	}()

	return nil
}

func (c *Consumer) process(ctx context.Context, body []byte) outcome {
	var evt model.RequestEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		logger.Error("[Consumer] err unmarshal event", zap.String("error", err.Error()))
		return outcomeDrop
	}

	if err := c.handler.HandleRequestEvent(ctx, evt); err != nil {
		logger.Error("[Consumer] err handle event",
			zap.String("type", string(evt.Type)),
			zap.Uint64("request_id", evt.RequestID),
			zap.String("error", err.Error()),
		)
		c.metrics.RecordEventConsumed(string(evt.Type), false)
		return outcomeRequeue
	}

	c.metrics.RecordEventConsumed(string(evt.Type), true)

	logger.Debug("[Consumer] event handled", zap.String("type", string(evt.Type)), zap.Uint64("request_id", evt.RequestID))
	return outcomeAck
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
