package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	bookingModel "tourku_backend/internals/features/bookings/model"
	bookingRepo "tourku_backend/internals/features/bookings/repository"
	"tourku_backend/internals/features/schedules/model"
	"tourku_backend/internals/features/schedules/repository"
)

const codeAttempts = 3

// GenerateResult: Created=false bila jadwal untuk booking sudah ada sebelumnya.
type GenerateResult struct {
	ScheduleID   uuid.UUID `json:"schedule_id"`
	ScheduleCode string    `json:"schedule_code"`
	Created      bool      `json:"created"`
}

type Generator struct {
	DB  *gorm.DB
	Log *logrus.Logger
	Now func() time.Time
}

func NewGenerator(db *gorm.DB, log *logrus.Logger) *Generator {
	return &Generator{DB: db, Log: log, Now: time.Now}
}

// CreateForBooking membuat satu jadwal dari booking terkonfirmasi. Idempotent per booking.
func (g *Generator) CreateForBooking(ctx context.Context, bookingID uuid.UUID) (*GenerateResult, error) {
	entry := g.Log.WithField("booking_id", bookingID)

	d, err := bookingRepo.FindBookingDetail(ctx, g.DB, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "booking not found")
		}
		entry.WithError(err).Error("load booking for schedule failed")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load booking")
	}
	if d.BookingStatus != bookingModel.BookingStatusConfirmed && d.BookingStatus != bookingModel.BookingStatusCompleted {
		return nil, fiber.NewError(fiber.StatusConflict, "booking is not confirmed")
	}
	if d.BookingDepartureDate == nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "booking has no departure date")
	}

	if existing, err := g.existing(ctx, bookingID); err != nil {
		entry.WithError(err).Error("lookup schedule failed")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load schedule")
	} else if existing != nil {
		return existing, nil
	}

	packageName := ""
	if d.PackageName != nil {
		packageName = *d.PackageName
	}
	departure := d.BookingDepartureDate.UTC()

	for attempt := 0; attempt < codeAttempts; attempt++ {
		code := g.scheduleCode(ctx, packageName, departure, attempt)

		s := &model.Schedule{
			ScheduleCode:            code,
			ScheduleBookingID:       &d.BookingID,
			SchedulePackageID:       d.BookingPackageID,
			ScheduleInstitutionName: d.CustomerCompanyName,
			ScheduleDepartureDate:   departure,
			ScheduleDepartureTime:   model.DefaultDepartureTime,
			ScheduleStatus:          model.ScheduleStatusActive,
			ScheduleNotes:           d.BookingNotes,
		}
		err := repository.CreateSchedule(ctx, g.DB, s)
		if err == nil {
			entry.WithField("schedule_code", code).Info("schedule created")
			return &GenerateResult{ScheduleID: s.ScheduleID, ScheduleCode: s.ScheduleCode, Created: true}, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			entry.WithError(err).Error("insert schedule failed")
			return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to create schedule")
		}

		// unique violation: booking sudah dijadwalkan request lain, atau kode bentrok
		winner, ferr := g.existing(ctx, bookingID)
		if ferr != nil {
			entry.WithError(ferr).Error("lookup schedule after conflict failed")
			return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to create schedule")
		}
		if winner != nil {
			return winner, nil
		}
		entry.WithField("schedule_code", code).Warn("schedule code collision, regenerating")
	}

	return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to generate unique schedule code")
}

func (g *Generator) existing(ctx context.Context, bookingID uuid.UUID) (*GenerateResult, error) {
	s, err := repository.FindScheduleByBookingID(ctx, g.DB, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &GenerateResult{ScheduleID: s.ScheduleID, ScheduleCode: s.ScheduleCode, Created: false}, nil
}

// scheduleCode: fungsi DB generate_schedule_code, fallback SCH + 6 digit terakhir unix ms.
func (g *Generator) scheduleCode(ctx context.Context, packageName string, departure time.Time, attempt int) string {
	code, err := repository.GenerateScheduleCode(ctx, g.DB, packageName, departure)
	if err == nil && code != "" {
		return code
	}
	if err != nil {
		g.Log.WithError(err).Debug("generate_schedule_code unavailable, using fallback")
	}
	return FallbackScheduleCode(g.Now(), attempt)
}

// FallbackScheduleCode: attempt > 0 menggeser timestamp agar percobaan ulang tidak menghasilkan kode sama.
func FallbackScheduleCode(now time.Time, attempt int) string {
	ms := now.UnixMilli() + int64(attempt)
	return fmt.Sprintf("SCH%06d", ms%1_000_000)
}
