package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tourku_backend/internals/features/bookings/model"
	paymentModel "tourku_backend/internals/features/payments/model"
	"tourku_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

// PlaceOrderRequest: body POST /api/public/bookings/orders
type PlaceOrderRequest struct {
	PackageID       string `json:"package_id" validate:"required,uuid"`
	PackageName     string `json:"package_name" validate:"max=200"`
	CustomerName    string `json:"customer_name" validate:"required,max=160"`
	CustomerEmail   string `json:"customer_email" validate:"required,email,max=200"`
	CustomerPhone   string `json:"customer_phone" validate:"max=40"`
	CustomerCompany string `json:"customer_company" validate:"max=200"`
	PassengerCount  int    `json:"passenger_count" validate:"omitempty,gte=1,lte=1000"`
	DepartureDate   string `json:"departure_date" validate:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD
	Notes           string `json:"notes"`
	TotalAmount     int64  `json:"total_amount" validate:"required,gt=0"`

	// diabaikan bila request membawa JWT valid
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

// Normalize: trim string & default jumlah penumpang.
func (r *PlaceOrderRequest) Normalize() {
	r.PackageID = strings.TrimSpace(r.PackageID)
	r.PackageName = strings.TrimSpace(r.PackageName)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerEmail = strings.TrimSpace(r.CustomerEmail)
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	r.CustomerCompany = strings.TrimSpace(r.CustomerCompany)
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	r.Notes = strings.TrimSpace(r.Notes)
	r.UserID = strings.TrimSpace(r.UserID)
	if r.PassengerCount == 0 {
		r.PassengerCount = 1
	}
}

// Departure: tanggal keberangkatan sebagai UTC midnight (nil bila kosong).
func (r *PlaceOrderRequest) Departure() (*time.Time, error) {
	return dbtime.ParseDate(r.DepartureDate)
}

/* =========================================================
   RESPONSE
========================================================= */

type PlaceOrderResponse struct {
	Token       string    `json:"token"`
	RedirectURL string    `json:"redirect_url"`
	OrderID     string    `json:"order_id"`
	BookingCode string    `json:"booking_code"`
	BookingID   uuid.UUID `json:"booking_id"`
}

type RetryPaymentResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	OrderID     string `json:"order_id"`
}

type ConfirmPaymentResponse struct {
	BookingID       uuid.UUID                  `json:"booking_id"`
	BookingStatus   model.BookingStatus        `json:"booking_status"`
	PaymentID       uuid.UUID                  `json:"payment_id"`
	PaymentStatus   paymentModel.PaymentStatus `json:"payment_status"`
	ScheduleID      *uuid.UUID                 `json:"schedule_id"`
	ScheduleCreated bool                       `json:"schedule_created"`
}

// BookingStatusResponse: dipakai halaman "finish" untuk polling status.
type BookingStatusResponse struct {
	BookingID     uuid.UUID                   `json:"booking_id"`
	BookingCode   string                      `json:"booking_code"`
	BookingStatus model.BookingStatus         `json:"booking_status"`
	PackageName   *string                     `json:"package_name,omitempty"`
	DepartureDate *string                     `json:"departure_date,omitempty"`
	TotalAmount   int64                       `json:"total_amount"`
	Payment       *BookingPaymentStatusResult `json:"payment,omitempty"`
}

type BookingPaymentStatusResult struct {
	OrderID    string                     `json:"order_id"`
	Status     paymentModel.PaymentStatus `json:"status"`
	Method     *string                    `json:"method,omitempty"`
	VerifiedAt *time.Time                 `json:"verified_at,omitempty"`
}

func FromBookingDetail(d *model.BookingDetail, p *paymentModel.Payment) BookingStatusResponse {
	out := BookingStatusResponse{
		BookingID:     d.BookingID,
		BookingCode:   d.BookingCode,
		BookingStatus: d.BookingStatus,
		PackageName:   d.PackageName,
		TotalAmount:   d.BookingTotalCostIDR,
	}
	out.DepartureDate = dbtime.FormatDate(d.BookingDepartureDate)
	if p != nil {
		out.Payment = &BookingPaymentStatusResult{
			OrderID:    p.PaymentGatewayOrderID,
			Status:     p.PaymentStatus,
			Method:     p.PaymentMethod,
			VerifiedAt: p.PaymentVerifiedAt,
		}
	}
	return out
}
