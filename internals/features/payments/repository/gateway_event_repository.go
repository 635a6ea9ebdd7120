package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourku_backend/internals/features/payments/model"
)

func CreateGatewayEvent(ctx context.Context, db *gorm.DB, ev *model.PaymentGatewayEvent) error {
	return db.WithContext(ctx).Create(ev).Error
}

func MarkGatewayEvent(ctx context.Context, db *gorm.DB, id uuid.UUID, status model.GatewayEventStatus, paymentID *uuid.UUID, errMsg string) error {
	now := time.Now()
	fields := map[string]any{
		"gateway_event_status":       status,
		"gateway_event_processed_at": now,
	}
	if paymentID != nil {
		fields["gateway_event_payment_id"] = *paymentID
	}
	if errMsg != "" {
		fields["gateway_event_error"] = errMsg
	}
	return db.WithContext(ctx).
		Model(&model.PaymentGatewayEvent{}).
		Where("gateway_event_id = ?", id).
		Updates(fields).Error
}
