package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "tourku_backend/internals/features/bookings/model"
	"tourku_backend/internals/features/schedules/model"
	"tourku_backend/internals/features/schedules/service"
	"tourku_backend/internals/helpers/events"
	"tourku_backend/internals/helpers/testdb"
)

type stubCreator struct{ err error }

func (s stubCreator) CreateForBooking(context.Context, uuid.UUID) (*service.GenerateResult, error) {
	return nil, s.err
}

func TestBookingConfirmedHandler_CreatesSchedule(t *testing.T) {
	db := testdb.Open(t)
	log, _ := logtest.NewNullLogger()
	b := testdb.SeedBooking(t, db, testdb.BookingSeed{
		Status:    bookingModel.BookingStatusConfirmed,
		Departure: testdb.Date(2026, time.October, 25),
	})

	handle := BookingConfirmedHandler(service.NewGenerator(db, log), log)
	ev := events.BookingEvent{BookingID: b.BookingID, Status: "confirmed", Source: "webhook"}

	require.NoError(t, handle(context.Background(), ev))
	// redelivery aman
	require.NoError(t, handle(context.Background(), ev))

	var n int64
	require.NoError(t, db.Model(&model.Schedule{}).Where("schedule_booking_id = ?", b.BookingID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestBookingConfirmedHandler_ErrorClasses(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	ev := events.BookingEvent{BookingID: uuid.New()}

	permanent := BookingConfirmedHandler(stubCreator{err: fiber.NewError(fiber.StatusUnprocessableEntity, "booking has no departure date")}, log)
	assert.NoError(t, permanent(context.Background(), ev))

	transient := BookingConfirmedHandler(stubCreator{err: errors.New("connection reset")}, log)
	assert.Error(t, transient(context.Background(), ev))

	internal := BookingConfirmedHandler(stubCreator{err: fiber.NewError(fiber.StatusInternalServerError, "failed")}, log)
	assert.Error(t, internal(context.Background(), ev))
}
