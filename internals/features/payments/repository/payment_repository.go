package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourku_backend/internals/features/payments/model"
)

func CreatePayment(ctx context.Context, db *gorm.DB, p *model.Payment) error {
	return db.WithContext(ctx).Create(p).Error
}

func FindPaymentByOrderID(ctx context.Context, db *gorm.DB, orderID string) (*model.Payment, error) {
	var p model.Payment
	if err := db.WithContext(ctx).
		Where("payment_gateway_order_id = ?", orderID).
		Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPendingPaymentByBooking: row pending terbaru untuk booking (dipakai retry).
func FindPendingPaymentByBooking(ctx context.Context, db *gorm.DB, bookingID uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	if err := db.WithContext(ctx).
		Where("payment_booking_id = ? AND payment_status = ?", bookingID, model.PaymentStatusPending).
		Order("payment_created_at DESC").
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func FindLatestPaymentByBooking(ctx context.Context, db *gorm.DB, bookingID uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	if err := db.WithContext(ctx).
		Where("payment_booking_id = ?", bookingID).
		Order("payment_created_at DESC").
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func CountPaymentsByBooking(ctx context.Context, db *gorm.DB, bookingID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("payment_booking_id = ?", bookingID).
		Count(&n).Error
	return n, err
}

// UpdatePaymentFields: update parsial by payment_id (kolom → nilai).
func UpdatePaymentFields(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("payment_id = ?", id).
		Updates(fields).Error
}
