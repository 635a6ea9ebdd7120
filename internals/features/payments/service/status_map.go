package service

import (
	"strings"

	bookingModel "tourku_backend/internals/features/bookings/model"
	"tourku_backend/internals/features/payments/model"
)

// StatusMapping: hasil pemetaan transaction_status Midtrans.
// Booking kosong = status booking tidak diubah.
type StatusMapping struct {
	Known   bool
	Payment model.PaymentStatus
	Booking bookingModel.BookingStatus
}

// MapMidtransStatus mengonversi transaction_status (+ fraud_status) ke status internal.
func MapMidtransStatus(transactionStatus, fraudStatus string) StatusMapping {
	ts := strings.ToLower(strings.TrimSpace(transactionStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))

	switch ts {
	case "capture":
		// kartu kredit: accept → lunas, challenge → tunggu review
		switch fraud {
		case "accept":
			return StatusMapping{Known: true, Payment: model.PaymentStatusVerified, Booking: bookingModel.BookingStatusConfirmed}
		case "challenge":
			return StatusMapping{Known: true, Payment: model.PaymentStatusPending}
		default:
			return StatusMapping{Known: true, Payment: model.PaymentStatusRejected, Booking: bookingModel.BookingStatusCancelled}
		}

	case "settlement":
		return StatusMapping{Known: true, Payment: model.PaymentStatusVerified, Booking: bookingModel.BookingStatusConfirmed}

	case "pending":
		return StatusMapping{Known: true, Payment: model.PaymentStatusPending, Booking: bookingModel.BookingStatusPending}

	case "deny", "cancel", "expire":
		return StatusMapping{Known: true, Payment: model.PaymentStatusRejected, Booking: bookingModel.BookingStatusCancelled}
	}

	return StatusMapping{}
}
