package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel подмножество *amqp.Channel, которое использует publisher
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события записей в RabbitMQ
// Одно соединение и один канал на процесс; публикации сериализуются мьютексом.
type Publisher struct {
	mu     sync.Mutex
	conn   io.Closer
	ch     Channel
	closed bool
	now    func() time.Time
}

// Dial подключается к брокеру и объявляет очереди событий
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %w", ErrConnect, err)
	}

	p, err := NewPublisher(ch)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisher создает publisher поверх готового канала
func NewPublisher(ch Channel) (*Publisher, error) {
	for _, queue := range []string{QueueAppointmentCreated, QueueAppointmentStatusChanged} {
		// durable, чтобы сообщения переживали рестарт брокера
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDeclareQueue, queue, err)
		}
	}
	return &Publisher{ch: ch, now: time.Now}, nil
}

// AppointmentCreated публикует событие создания записи
func (p *Publisher) AppointmentCreated(ctx context.Context, event AppointmentCreatedEvent) error {
	return p.publish(ctx, QueueAppointmentCreated, event)
}

// AppointmentStatusChanged публикует событие смены статуса
func (p *Publisher) AppointmentStatusChanged(ctx context.Context, event AppointmentStatusChangedEvent) error {
	return p.publish(ctx, QueueAppointmentStatusChanged, event)
}

func (p *Publisher) publish(ctx context.Context, queue string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %w", ErrPublish, queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    p.now().UTC(),
		Type:         queue,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublish, queue, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	chErr := p.ch.Close()
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}
	return chErr
}

// Noop publisher, когда брокер отключён в конфигурации
type Noop struct{}

func (Noop) AppointmentCreated(context.Context, AppointmentCreatedEvent) error { return nil }

func (Noop) AppointmentStatusChanged(context.Context, AppointmentStatusChangedEvent) error {
	return nil
}

func (Noop) Close() error { return nil }
