package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder учёт опубликованных событий
type MetricsRecorder interface {
	RecordBookingEvent(event string)
}

// Publisher публикует события в durable очередь RabbitMQ.
// Соединение переиспользуется и восстанавливается при следующей публикации
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel

	metrics MetricsRecorder
	logger  Logger
}

// NewPublisher подключается к брокеру и объявляет очередь
func NewPublisher(url, queue string, metrics MetricsRecorder, logger Logger) (*Publisher, error) {
	p := &Publisher{
		url:     url,
		queue:   queue,
		metrics: metrics,
		logger:  logger,
	}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	// durable, чтобы сообщения пережили рестарт брокера
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: declare queue %s: %v", ErrConnect, p.queue, err)
	}

	p.conn = conn
	p.ch = ch
	return nil
}

// Publish отправляет событие как persistent JSON сообщение
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		p.logger.Warn("Events: channel closed, reconnecting to broker")
		p.closeLocked()
		if err := p.connect(); err != nil {
			return err
		}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	if p.metrics != nil {
		p.metrics.RecordBookingEvent(string(event.Type))
	}
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *Publisher) closeLocked() error {
	var err error
	if p.ch != nil {
		err = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
		p.conn = nil
	}
	return err
}

// Noop публикатор для конфигурации без брокера, только считает события
type Noop struct {
	metrics MetricsRecorder
}

// NewNoop создает публикатор-заглушку
func NewNoop(metrics MetricsRecorder) *Noop {
	return &Noop{metrics: metrics}
}

func (n *Noop) Publish(_ context.Context, event Event) error {
	if n.metrics != nil {
		n.metrics.RecordBookingEvent(string(event.Type))
	}
	return nil
}

func (n *Noop) Close() error {
	return nil
}
