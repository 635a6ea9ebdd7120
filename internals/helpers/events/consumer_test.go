package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}
func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, body []byte, redelivered bool) amqp.Delivery {
	t.Helper()
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body, Redelivered: redelivered}
}

func TestDispatch(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	c := &Consumer{queue: "q", log: log}

	ev := BookingEvent{BookingID: uuid.New(), Status: "confirmed", Source: "webhook", OccurredAt: time.Now().UTC()}
	body, err := jsonBody(ev)
	require.NoError(t, err)

	ok := func(_ context.Context, got BookingEvent) error {
		assert.Equal(t, ev.BookingID, got.BookingID)
		return nil
	}
	failing := func(context.Context, BookingEvent) error { return errors.New("db down") }

	t.Run("ack on success", func(t *testing.T) {
		a := &ackRecorder{}
		c.dispatch(context.Background(), delivery(t, a, body, false), ok)
		assert.True(t, a.acked)
		assert.False(t, a.nacked)
	})

	t.Run("requeue first failure", func(t *testing.T) {
		a := &ackRecorder{}
		c.dispatch(context.Background(), delivery(t, a, body, false), failing)
		assert.True(t, a.nacked)
		assert.True(t, a.requeue)
	})

	t.Run("drop failed redelivery", func(t *testing.T) {
		a := &ackRecorder{}
		c.dispatch(context.Background(), delivery(t, a, body, true), failing)
		assert.True(t, a.nacked)
		assert.False(t, a.requeue)
	})

	t.Run("drop malformed body", func(t *testing.T) {
		a := &ackRecorder{}
		c.dispatch(context.Background(), delivery(t, a, []byte("{"), false), ok)
		assert.True(t, a.nacked)
		assert.False(t, a.requeue)
	})
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), RoutingBookingConfirmed, BookingEvent{}))
}
