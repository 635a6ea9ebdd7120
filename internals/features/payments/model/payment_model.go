package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment = satu percobaan transaksi gateway untuk satu booking.
type Payment struct {
	PaymentID        uuid.UUID     `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentBookingID uuid.UUID     `gorm:"column:payment_booking_id;type:uuid;not null;index" json:"payment_booking_id"`
	PaymentAmountIDR int64         `gorm:"column:payment_amount_idr;not null" json:"payment_amount_idr"`
	PaymentStatus    PaymentStatus `gorm:"column:payment_status;type:varchar(16);not null;default:'pending'" json:"payment_status"`
	PaymentMethod    *string       `gorm:"column:payment_method;type:varchar(40)" json:"payment_method,omitempty"`

	// Info gateway
	PaymentGatewayOrderID           string  `gorm:"column:payment_gateway_order_id;type:varchar(64);not null;uniqueIndex:uq_payments_gateway_order_id" json:"payment_gateway_order_id"`
	PaymentGatewayToken             *string `gorm:"column:payment_gateway_token" json:"payment_gateway_token,omitempty"`
	PaymentRedirectURL              *string `gorm:"column:payment_redirect_url" json:"payment_redirect_url,omitempty"`
	PaymentGatewayTransactionID     *string `gorm:"column:payment_gateway_transaction_id;type:varchar(80)" json:"payment_gateway_transaction_id,omitempty"`
	PaymentGatewayTransactionStatus *string `gorm:"column:payment_gateway_transaction_status;type:varchar(40)" json:"payment_gateway_transaction_status,omitempty"`

	// Verifikasi
	PaymentVerifiedAt *time.Time `gorm:"column:payment_verified_at" json:"payment_verified_at,omitempty"`
	PaymentVerifiedBy *uuid.UUID `gorm:"column:payment_verified_by;type:uuid" json:"payment_verified_by,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}

func (p *Payment) IsPending() bool  { return p.PaymentStatus == PaymentStatusPending }
func (p *Payment) IsVerified() bool { return p.PaymentStatus == PaymentStatusVerified }
