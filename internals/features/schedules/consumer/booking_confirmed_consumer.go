package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tourku_backend/internals/features/schedules/service"
	"tourku_backend/internals/helpers/events"
)

const (
	QueueBookingConfirmed = "tourku.schedules.booking-confirmed"
	handleTimeout         = 10 * time.Second
)

// ScheduleCreator: dipenuhi *service.Generator.
type ScheduleCreator interface {
	CreateForBooking(ctx context.Context, bookingID uuid.UUID) (*service.GenerateResult, error)
}

// BookingConfirmedHandler membuat jadwal untuk booking yang baru confirmed.
// Error 4xx (booking belum confirmed, tanpa tanggal) bersifat permanen → ack tanpa retry.
func BookingConfirmedHandler(gen ScheduleCreator, log *logrus.Logger) events.BookingEventHandler {
	return func(ctx context.Context, ev events.BookingEvent) error {
		ctx, cancel := context.WithTimeout(ctx, handleTimeout)
		defer cancel()

		entry := log.WithFields(logrus.Fields{"booking_id": ev.BookingID, "source": ev.Source})

		res, err := gen.CreateForBooking(ctx, ev.BookingID)
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
				entry.WithField("reason", fe.Message).Info("booking.confirmed skipped")
				return nil
			}
			return err
		}

		entry.WithFields(logrus.Fields{"schedule_id": res.ScheduleID, "created": res.Created}).Info("booking.confirmed handled")
		return nil
	}
}

// Start menjalankan consumer di goroutine. Channel done ditutup saat consumer berhenti.
func Start(ctx context.Context, c *events.Consumer, gen ScheduleCreator, log *logrus.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.Run(ctx, BookingConfirmedHandler(gen, log)); err != nil {
			log.WithError(err).Error("booking.confirmed consumer stopped")
		}
	}()
	return done
}
