package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourku_backend/internals/features/bookings/model"
)

const bookingDetailSelect = `bookings.*,
	customers.customer_name, customers.customer_email, customers.customer_phone, customers.customer_company_name,
	tour_packages.tour_package_name`

func detailQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("bookings").
		Select(bookingDetailSelect).
		Joins("LEFT JOIN customers ON customers.customer_id = bookings.booking_customer_id").
		Joins("LEFT JOIN tour_packages ON tour_packages.tour_package_id = bookings.booking_package_id")
}

func CreateBooking(ctx context.Context, db *gorm.DB, b *model.Booking) error {
	return db.WithContext(ctx).Create(b).Error
}

func FindBookingByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := db.WithContext(ctx).First(&b, "booking_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// FindBookingDetail: booking + customer + paket. gorm.ErrRecordNotFound bila tidak ada.
func FindBookingDetail(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.BookingDetail, error) {
	var d model.BookingDetail
	if err := detailQuery(ctx, db).Where("bookings.booking_id = ?", id).Take(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func FindBookingDetailByCode(ctx context.Context, db *gorm.DB, code string) (*model.BookingDetail, error) {
	var d model.BookingDetail
	if err := detailQuery(ctx, db).Where("bookings.booking_code = ?", code).Take(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func UpdateBookingStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status model.BookingStatus) error {
	return db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("booking_id = ?", id).
		Update("booking_status", status).Error
}
