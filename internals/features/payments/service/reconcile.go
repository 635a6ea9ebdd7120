package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bookingModel "tourku_backend/internals/features/bookings/model"
	bookingRepo "tourku_backend/internals/features/bookings/repository"
	"tourku_backend/internals/features/payments/dto"
	"tourku_backend/internals/features/payments/model"
	paymentRepo "tourku_backend/internals/features/payments/repository"
	"tourku_backend/internals/helpers/events"
	"tourku_backend/internals/helpers/redislock"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrNotificationBusy = errors.New("notification for this order is being processed")
)

const defaultLockTTL = 15 * time.Second

// Reconciler menerapkan notifikasi gateway ke Payment & Booking.
type Reconciler struct {
	DB        *gorm.DB
	ServerKey string
	Locker    redislock.Locker
	Publisher events.Publisher
	Log       *logrus.Logger
	Now       func() time.Time
	LockTTL   time.Duration
}

func NewReconciler(db *gorm.DB, serverKey string, locker redislock.Locker, pub events.Publisher, log *logrus.Logger) *Reconciler {
	if locker == nil {
		locker = redislock.NoopLocker{}
	}
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &Reconciler{
		DB:        db,
		ServerKey: serverKey,
		Locker:    locker,
		Publisher: pub,
		Log:       log,
		Now:       time.Now,
		LockTTL:   defaultLockTTL,
	}
}

// HandleNotification memverifikasi signature lalu memetakan status ke Payment & Booking.
// Update payment dan booking independen: gagal salah satu hanya di-log.
func (r *Reconciler) HandleNotification(ctx context.Context, n dto.MidtransNotification, raw []byte) (*dto.ReconcileResponse, error) {
	// signature atas order_id mentah; lookup & lock memakai versi trim
	orderID := strings.TrimSpace(n.OrderID)
	entry := r.Log.WithFields(logrus.Fields{
		"order_id":           orderID,
		"transaction_status": n.TransactionStatus,
		"fraud_status":       n.FraudStatus,
	})

	valid := VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey, r.ServerKey)
	ev := r.recordEvent(ctx, n, raw, valid)

	if !valid {
		entry.Warn("midtrans notification rejected: invalid signature")
		r.markEvent(ctx, ev, model.GatewayEventStatusRejected, nil, ErrInvalidSignature.Error())
		return nil, ErrInvalidSignature
	}

	release, ok, err := r.Locker.TryLock(ctx, "payment:"+orderID, r.LockTTL)
	if err != nil {
		// Redis bermasalah: lanjut tanpa lock (last-write-wins)
		entry.WithError(err).Warn("delivery lock unavailable, continuing without lock")
	} else if !ok {
		r.markEvent(ctx, ev, model.GatewayEventStatusFailed, nil, ErrNotificationBusy.Error())
		return nil, ErrNotificationBusy
	} else {
		defer release()
	}

	p, err := paymentRepo.FindPaymentByOrderID(ctx, r.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry.Warn("midtrans notification for unknown order")
			r.markEvent(ctx, ev, model.GatewayEventStatusFailed, nil, ErrPaymentNotFound.Error())
			return nil, ErrPaymentNotFound
		}
		r.markEvent(ctx, ev, model.GatewayEventStatusFailed, nil, err.Error())
		return nil, fmt.Errorf("find payment %s: %w", orderID, err)
	}

	out := &dto.ReconcileResponse{
		OrderID:           orderID,
		PaymentID:         &p.PaymentID,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		PaymentStatus:     p.PaymentStatus,
	}

	mapping := MapMidtransStatus(n.TransactionStatus, n.FraudStatus)
	if !mapping.Known {
		entry.Info("midtrans notification ignored: unmapped transaction status")
		r.markEvent(ctx, ev, model.GatewayEventStatusIgnored, &p.PaymentID, "")
		out.Ignored = true
		return out, nil
	}

	now := r.Now()
	fields := map[string]any{
		"payment_status":                     mapping.Payment,
		"payment_gateway_transaction_status": n.TransactionStatus,
	}
	if n.TransactionID != "" {
		fields["payment_gateway_transaction_id"] = n.TransactionID
	}
	if n.PaymentType != "" {
		fields["payment_method"] = n.PaymentType
	}
	verifiedAt := p.PaymentVerifiedAt
	if mapping.Payment == model.PaymentStatusVerified && verifiedAt == nil {
		fields["payment_verified_at"] = now
		verifiedAt = &now
	}

	var failures []string
	if err := paymentRepo.UpdatePaymentFields(ctx, r.DB, p.PaymentID, fields); err != nil {
		entry.WithError(err).Error("update payment from notification failed")
		failures = append(failures, "payment: "+err.Error())
	} else {
		out.PaymentStatus = mapping.Payment
		out.VerifiedAt = verifiedAt
	}

	if mapping.Booking != "" {
		if st, err := r.applyBookingStatus(ctx, p, mapping.Booking); err != nil {
			entry.WithError(err).WithField("booking_id", p.PaymentBookingID).Error("update booking from notification failed")
			failures = append(failures, "booking: "+err.Error())
		} else {
			out.BookingStatus = &st
		}
	}

	if len(failures) > 0 {
		r.markEvent(ctx, ev, model.GatewayEventStatusFailed, &p.PaymentID, fmt.Sprint(failures))
	} else {
		r.markEvent(ctx, ev, model.GatewayEventStatusProcessed, &p.PaymentID, "")
	}

	entry.WithField("payment_status", out.PaymentStatus).Info("midtrans notification processed")
	return out, nil
}

// applyBookingStatus menulis status booking bila berbeda dan mem-publish event bila final.
func (r *Reconciler) applyBookingStatus(ctx context.Context, p *model.Payment, target bookingModel.BookingStatus) (bookingModel.BookingStatus, error) {
	b, err := bookingRepo.FindBookingByID(ctx, r.DB, p.PaymentBookingID)
	if err != nil {
		return "", err
	}
	if b.BookingStatus == target {
		return target, nil
	}
	if err := bookingRepo.UpdateBookingStatus(ctx, r.DB, b.BookingID, target); err != nil {
		return "", err
	}

	var routing string
	switch target {
	case bookingModel.BookingStatusConfirmed:
		routing = events.RoutingBookingConfirmed
	case bookingModel.BookingStatusCancelled:
		routing = events.RoutingBookingCancelled
	}
	if routing != "" {
		evt := events.BookingEvent{BookingID: b.BookingID, Status: string(target), Source: "webhook", OccurredAt: r.Now()}
		if err := r.Publisher.Publish(ctx, routing, evt); err != nil {
			r.Log.WithError(err).WithField("booking_id", b.BookingID).Warn("publish booking event failed")
		}
	}
	return target, nil
}

func (r *Reconciler) recordEvent(ctx context.Context, n dto.MidtransNotification, raw []byte, valid bool) *model.PaymentGatewayEvent {
	ev := &model.PaymentGatewayEvent{
		GatewayEventOrderID:           strings.TrimSpace(n.OrderID),
		GatewayEventTransactionStatus: n.TransactionStatus,
		GatewayEventTransactionID:     strPtrOrNil(n.TransactionID),
		GatewayEventFraudStatus:       strPtrOrNil(n.FraudStatus),
		GatewayEventPayload:           datatypes.JSON(raw),
		GatewayEventSignatureValid:    valid,
		GatewayEventStatus:            model.GatewayEventStatusReceived,
	}
	if len(raw) == 0 {
		ev.GatewayEventPayload = datatypes.JSON("{}")
	}
	if err := paymentRepo.CreateGatewayEvent(ctx, r.DB, ev); err != nil {
		r.Log.WithError(err).WithField("order_id", ev.GatewayEventOrderID).Warn("record gateway event failed")
		return nil
	}
	return ev
}

func (r *Reconciler) markEvent(ctx context.Context, ev *model.PaymentGatewayEvent, status model.GatewayEventStatus, paymentID *uuid.UUID, errMsg string) {
	if ev == nil {
		return
	}
	if err := paymentRepo.MarkGatewayEvent(ctx, r.DB, ev.GatewayEventID, status, paymentID, errMsg); err != nil {
		r.Log.WithError(err).WithField("gateway_event_id", ev.GatewayEventID).Warn("update gateway event failed")
	}
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
