package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourku_backend/internals/features/schedules/model"
	"tourku_backend/internals/helpers/dbtime"
)

func CreateSchedule(ctx context.Context, db *gorm.DB, s *model.Schedule) error {
	return db.WithContext(ctx).Create(s).Error
}

func FindScheduleByBookingID(ctx context.Context, db *gorm.DB, bookingID uuid.UUID) (*model.Schedule, error) {
	var s model.Schedule
	if err := db.WithContext(ctx).
		Where("schedule_booking_id = ?", bookingID).
		Take(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func CountSchedulesByBookingID(ctx context.Context, db *gorm.DB, bookingID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_booking_id = ?", bookingID).
		Count(&n).Error
	return n, err
}

// GenerateScheduleCode memanggil fungsi DB generate_schedule_code(nama paket, tanggal).
func GenerateScheduleCode(ctx context.Context, db *gorm.DB, packageName string, departure time.Time) (string, error) {
	var code string
	err := db.WithContext(ctx).
		Raw("SELECT generate_schedule_code(?, ?)", packageName, departure.Format(dbtime.DateLayout)).
		Scan(&code).Error
	return code, err
}

// DeactivatePastSchedules: aktif + tanggal < today → tidak-aktif. today format YYYY-MM-DD.
func DeactivatePastSchedules(ctx context.Context, db *gorm.DB, today string) (int64, error) {
	res := db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_status = ? AND schedule_departure_date < ?", model.ScheduleStatusActive, today).
		Update("schedule_status", model.ScheduleStatusInactive)
	return res.RowsAffected, res.Error
}
