package events

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// BookingEventHandler memproses satu event. Error → nack; di-requeue sekali, redelivery yang gagal dibuang.
type BookingEventHandler func(ctx context.Context, ev BookingEvent) error

type Consumer struct {
	channel *amqp.Channel
	queue   string
	log     *logrus.Logger
}

// NewConsumer mendeklarasikan queue durable dan bind ke routingKey pada exchange event.
func NewConsumer(conn *amqp.Connection, queue, routingKey string, log *logrus.Logger) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	if err := ch.QueueBind(queue, routingKey, ExchangeName, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq queue bind: %w", err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("rabbitmq qos: %w", err)
	}
	return &Consumer{channel: ch, queue: queue, log: log}, nil
}

// Run memproses pesan sampai ctx selesai atau channel ditutup.
func (c *Consumer) Run(ctx context.Context, handle BookingEventHandler) error {
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			c.dispatch(ctx, msg, handle)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg amqp.Delivery, handle BookingEventHandler) {
	var ev BookingEvent
	if err := sonic.Unmarshal(msg.Body, &ev); err != nil {
		c.log.WithError(err).WithField("queue", c.queue).Warn("drop malformed event")
		_ = msg.Nack(false, false)
		return
	}
	if err := handle(ctx, ev); err != nil {
		c.log.WithError(err).WithField("booking_id", ev.BookingID).Error("event handler failed, requeue")
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}
	_ = msg.Ack(false)
}

func (c *Consumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
}
