// Package events: publish/consume event booking lewat RabbitMQ (exchange topic).
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	ExchangeName = "tourku.events"
	ExchangeKind = "topic"

	RoutingBookingConfirmed = "booking.confirmed"
	RoutingBookingCancelled = "booking.cancelled"
)

// BookingEvent payload untuk booking.confirmed / booking.cancelled.
type BookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Status     string    `json:"status"`
	Source     string    `json:"source"` // webhook | manual
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type RabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *logrus.Logger
}

func NewRabbitPublisher(url string, log *logrus.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &RabbitPublisher{conn: conn, channel: ch, log: log}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := jsonBody(payload)
	if err != nil {
		return err
	}

	if err := p.channel.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.WithFields(logrus.Fields{"exchange": ExchangeName, "routing_key": routingKey}).Debug("event published")
	return nil
}

func (p *RabbitPublisher) Connection() *amqp.Connection { return p.conn }

func (p *RabbitPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher dipakai bila RABBITMQ_URL kosong.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }

func jsonBody(payload any) ([]byte, error) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return body, nil
}
