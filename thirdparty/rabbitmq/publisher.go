package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/muhammadheryan/telecom-distribution/model"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"github.com/muhammadheryan/telecom-distribution/utils/metrics"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrPublisherUnavailable is returned while the circuit breaker is open.
var ErrPublisherUnavailable = errors.New("event publisher unavailable")

type EventPublisher interface {
	PublishRequestEvent(ctx context.Context, evt model.RequestEvent) error
}

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Publisher struct {
	conn    *amqp091.Connection
	channel publishChannel
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
	mu      sync.Mutex
}

func NewPublisher(url string) (*Publisher, error) {
	conn, channel, err := dial(url)
	if err != nil {
		return nil, err
	}
	return newPublisher(conn, channel), nil
}

func newPublisher(conn *amqp091.Connection, channel publishChannel) *Publisher {
	p := &Publisher{conn: conn, channel: channel}
	settings := gobreaker.Settings{
		Name:        "rabbitmq-publisher",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			p.metrics.SetCircuitBreakerState(name, int(to))
		},
	}
	p.breaker = gobreaker.NewCircuitBreaker(settings)
	return p
}

// WithMetrics records publish outcomes and breaker state on m.
func (p *Publisher) WithMetrics(m *metrics.Metrics) *Publisher {
	p.metrics = m
	return p
}

// PublishRequestEvent routes the event by its type, e.g. product_request.approved.
func (p *Publisher) PublishRequestEvent(ctx context.Context, evt model.RequestEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	_, err = p.breaker.Execute(func() (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return nil, p.channel.PublishWithContext(ctx,
			RequestEventExchange, // exchange
			string(evt.Type),     // routing key
			false,                // mandatory
			false,                // immediate
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				Timestamp:    evt.OccurredAt,
				Body:         body,
			},
		)
	})
	p.metrics.RecordEventPublished(string(evt.Type), err == nil)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrPublisherUnavailable, err)
	}
	return err
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
