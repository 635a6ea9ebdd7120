package dto

import (
	"time"

	"github.com/google/uuid"

	bookingModel "tourku_backend/internals/features/bookings/model"
	"tourku_backend/internals/features/payments/model"
)

// MidtransNotification: payload HTTP notification dari Midtrans.
type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, ...
	TransactionID     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	SettlementTime    string `json:"settlement_time,omitempty"`
}

type ReconcileResponse struct {
	OrderID           string                      `json:"order_id"`
	PaymentID         *uuid.UUID                  `json:"payment_id,omitempty"`
	TransactionStatus string                      `json:"transaction_status"`
	FraudStatus       string                      `json:"fraud_status,omitempty"`
	PaymentStatus     model.PaymentStatus         `json:"payment_status,omitempty"`
	BookingStatus     *bookingModel.BookingStatus `json:"booking_status,omitempty"`
	VerifiedAt        *time.Time                  `json:"verified_at,omitempty"`
	Ignored           bool                        `json:"ignored"`
}
