package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	BookingID         uuid.UUID  `gorm:"column:booking_id;type:uuid;primaryKey" json:"booking_id"`
	BookingCode       string     `gorm:"column:booking_code;type:varchar(16);not null;uniqueIndex:uq_bookings_code" json:"booking_code"`
	BookingCustomerID uuid.UUID  `gorm:"column:booking_customer_id;type:uuid;not null;index" json:"booking_customer_id"`
	BookingPackageID  uuid.UUID  `gorm:"column:booking_package_id;type:uuid;not null;index" json:"booking_package_id"`
	BookingUserID     *uuid.UUID `gorm:"column:booking_user_id;type:uuid;index" json:"booking_user_id,omitempty"`

	BookingPassengerCount int           `gorm:"column:booking_passenger_count;not null;default:1" json:"booking_passenger_count"`
	BookingDepartureDate  *time.Time    `gorm:"column:booking_departure_date;type:date" json:"booking_departure_date,omitempty"`
	BookingStatus         BookingStatus `gorm:"column:booking_status;type:varchar(16);not null;default:'pending'" json:"booking_status"`
	BookingNotes          *string       `gorm:"column:booking_notes" json:"booking_notes,omitempty"`
	BookingTotalCostIDR   int64         `gorm:"column:booking_total_cost_idr;not null" json:"booking_total_cost_idr"`

	BookingCreatedAt time.Time `gorm:"column:booking_created_at;autoCreateTime" json:"booking_created_at"`
	BookingUpdatedAt time.Time `gorm:"column:booking_updated_at;autoUpdateTime" json:"booking_updated_at"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.BookingID == uuid.Nil {
		b.BookingID = uuid.New()
	}
	return nil
}

// IsSettled: status yang tidak boleh dibayar ulang.
func (b *Booking) IsSettled() bool {
	return b.BookingStatus == BookingStatusConfirmed || b.BookingStatus == BookingStatusCompleted
}

// BookingDetail = booking + snapshot customer & paket (hasil join).
type BookingDetail struct {
	Booking

	CustomerName        *string `gorm:"column:customer_name"`
	CustomerEmail       *string `gorm:"column:customer_email"`
	CustomerPhone       *string `gorm:"column:customer_phone"`
	CustomerCompanyName *string `gorm:"column:customer_company_name"`
	PackageName         *string `gorm:"column:tour_package_name"`
}
