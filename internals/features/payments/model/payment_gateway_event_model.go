package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
  payment_gateway_events = log notifikasi webhook dari gateway.
  - Bisa banyak row per 1 payment (tiap notif / retry gateway)
  - Hanya audit; status payment tidak pernah dibaca dari sini.
*/

type PaymentGatewayEvent struct {
	GatewayEventID        uuid.UUID  `gorm:"column:gateway_event_id;type:uuid;primaryKey" json:"gateway_event_id"`
	GatewayEventPaymentID *uuid.UUID `gorm:"column:gateway_event_payment_id;type:uuid;index" json:"gateway_event_payment_id,omitempty"`

	GatewayEventOrderID           string  `gorm:"column:gateway_event_order_id;type:varchar(64);index" json:"gateway_event_order_id"`
	GatewayEventTransactionID     *string `gorm:"column:gateway_event_transaction_id;type:varchar(80)" json:"gateway_event_transaction_id,omitempty"`
	GatewayEventTransactionStatus string  `gorm:"column:gateway_event_transaction_status;type:varchar(40)" json:"gateway_event_transaction_status"`
	GatewayEventFraudStatus       *string `gorm:"column:gateway_event_fraud_status;type:varchar(40)" json:"gateway_event_fraud_status,omitempty"`

	GatewayEventPayload        datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`
	GatewayEventSignatureValid bool           `gorm:"column:gateway_event_signature_valid;not null;default:false" json:"gateway_event_signature_valid"`

	GatewayEventStatus GatewayEventStatus `gorm:"column:gateway_event_status;type:varchar(16);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string            `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;autoCreateTime" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (PaymentGatewayEvent) TableName() string { return "payment_gateway_events" }

func (e *PaymentGatewayEvent) BeforeCreate(*gorm.DB) error {
	if e.GatewayEventID == uuid.Nil {
		e.GatewayEventID = uuid.New()
	}
	return nil
}
