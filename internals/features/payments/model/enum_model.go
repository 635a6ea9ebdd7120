package model

type PaymentStatus string
type GatewayEventStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

const PaymentMethodManual = "manual"

const (
	GatewayEventStatusReceived  GatewayEventStatus = "received"
	GatewayEventStatusProcessed GatewayEventStatus = "processed"
	GatewayEventStatusIgnored   GatewayEventStatus = "ignored"
	GatewayEventStatusRejected  GatewayEventStatus = "rejected"
	GatewayEventStatusFailed    GatewayEventStatus = "failed"
)
