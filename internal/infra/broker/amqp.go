package broker

//go:generate mockgen -source=amqp.go -destination=../../../tests/mock/broker/amqp_mock.go -package=brokermock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rental-engine/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dialer opens a channel with the exchange already declared.
type Dialer func() (Channel, func(), error)

// AMQPPublisher sends events to a durable topic exchange, using the topic as routing key.
type AMQPPublisher struct {
	exchange string
	dial     Dialer
	now      func() time.Time

	mu      sync.Mutex
	ch      Channel
	closeFn func()
}

func NewAMQPPublisher(exchange string, dial Dialer, now func() time.Time) *AMQPPublisher {
	return &AMQPPublisher{exchange: exchange, dial: dial, now: now}
}

// DialExchange returns a Dialer that connects to url and declares exchange as a durable topic exchange.
func DialExchange(url, exchange string) Dialer {
	return func() (Channel, func(), error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, nil, errs.Wrap(err, "amqp dial")
		}
		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, errs.Wrap(err, "amqp channel")
		}
		if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, nil, errs.Wrapf(err, "declare exchange %s", exchange)
		}
		return ch, func() { _ = conn.Close() }, nil
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		ch, closeFn, err := p.dial()
		if err != nil {
			return err
		}
		p.ch, p.closeFn = ch, closeFn
	}

	err := p.ch.PublishWithContext(ctx, p.exchange, topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Body:         payload,
	})
	if err != nil {
		// reconnect on the next publish
		p.resetLocked()
		return errs.Wrapf(err, "publish %s", topic)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}

func (p *AMQPPublisher) resetLocked() {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			slog.Debug("amqp channel close", "error", err.Error())
		}
	}
	if p.closeFn != nil {
		p.closeFn()
	}
	p.ch, p.closeFn = nil, nil
}
