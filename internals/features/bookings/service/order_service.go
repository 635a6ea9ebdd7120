package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tourku_backend/internals/features/bookings/dto"
	"tourku_backend/internals/features/bookings/model"
	"tourku_backend/internals/features/bookings/repository"
	customerRepo "tourku_backend/internals/features/customers/repository"
	packageRepo "tourku_backend/internals/features/packages/repository"
	paymentModel "tourku_backend/internals/features/payments/model"
	paymentRepo "tourku_backend/internals/features/payments/repository"
	paymentService "tourku_backend/internals/features/payments/service"
	scheduleService "tourku_backend/internals/features/schedules/service"
	"tourku_backend/internals/helpers/events"
)

const bookingCodeAttempts = 5

// fallback data pelanggan saat membuat ulang transaksi
const (
	fallbackCustomerName  = "Customer"
	fallbackCustomerEmail = "customer@email.com"
	fallbackCustomerPhone = "08123456789"
	fallbackPackageName   = "Tour Package"
)

var errInternal = fiber.NewError(fiber.StatusInternalServerError, "internal server error")

type OrderService struct {
	DB        *gorm.DB
	Gateway   paymentService.Gateway
	Schedules *scheduleService.Generator // opsional
	Publisher events.Publisher
	Log       *logrus.Logger

	OrderPrefix    string
	Now            func() time.Time
	NewBookingCode func() string
}

func NewOrderService(db *gorm.DB, gw paymentService.Gateway, schedules *scheduleService.Generator, pub events.Publisher, orderPrefix string, log *logrus.Logger) *OrderService {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &OrderService{
		DB:             db,
		Gateway:        gw,
		Schedules:      schedules,
		Publisher:      pub,
		Log:            log,
		OrderPrefix:    orderPrefix,
		Now:            time.Now,
		NewBookingCode: GenerateBookingCode,
	}
}

/* =========================================================
   PLACE ORDER
========================================================= */

// PlaceOrder: customer + booking + payment intent dalam satu transaksi, lalu checkout ke gateway.
// authUserID (dari JWT) menang atas user_id di body.
func (s *OrderService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest, authUserID *uuid.UUID) (*dto.PlaceOrderResponse, error) {
	req.Normalize()

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid package_id")
	}
	departure, err := req.Departure()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid departure_date")
	}
	userID := authUserID
	if userID == nil && req.UserID != "" {
		if id, err := uuid.Parse(req.UserID); err == nil {
			userID = &id
		}
	}

	pkg, err := packageRepo.FindTourPackageByID(ctx, s.DB, packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "tour package not found")
		}
		s.Log.WithError(err).WithField("package_id", packageID).Error("load tour package failed")
		return nil, errInternal
	}
	packageName := req.PackageName
	if packageName == "" {
		packageName = pkg.TourPackageName
	}

	orderID := GenerateOrderID(s.OrderPrefix, s.Now())
	entry := s.Log.WithFields(logrus.Fields{"order_id": orderID, "customer_email": req.CustomerEmail})

	var (
		booking *model.Booking
		payment *paymentModel.Payment
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := customerRepo.UpsertCustomerByEmail(ctx, tx, customerRepo.CustomerInput{
			Name:        req.CustomerName,
			CompanyName: optional(req.CustomerCompany),
			Email:       req.CustomerEmail,
			Phone:       req.CustomerPhone,
			UserID:      userID,
		})
		if err != nil {
			return err
		}

		booking = &model.Booking{
			BookingCustomerID:     customer.CustomerID,
			BookingPackageID:      pkg.TourPackageID,
			BookingUserID:         userID,
			BookingPassengerCount: req.PassengerCount,
			BookingDepartureDate:  departure,
			BookingStatus:         model.BookingStatusPending,
			BookingNotes:          optional(req.Notes),
			BookingTotalCostIDR:   req.TotalAmount,
		}
		if err := s.insertWithFreshCode(ctx, tx, booking); err != nil {
			return err
		}

		payment = &paymentModel.Payment{
			PaymentBookingID:      booking.BookingID,
			PaymentAmountIDR:      req.TotalAmount,
			PaymentStatus:         paymentModel.PaymentStatusPending,
			PaymentGatewayOrderID: orderID,
		}
		return paymentRepo.CreatePayment(ctx, tx, payment)
	})
	if err != nil {
		entry.WithError(err).Error("place order transaction failed")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to create booking")
	}
	entry = entry.WithFields(logrus.Fields{"booking_id": booking.BookingID, "booking_code": booking.BookingCode})

	checkout, err := s.Gateway.CreateCheckout(ctx, paymentService.CheckoutRequest{
		OrderID:        orderID,
		Amount:         req.TotalAmount,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		PackageID:      pkg.TourPackageID.String(),
		PackageName:    packageName,
		PassengerCount: req.PassengerCount,
		BookingCode:    booking.BookingCode,
	})
	if err != nil {
		entry.WithError(err).Error("gateway checkout failed, cancelling booking")
		s.compensate(ctx, booking.BookingID, payment.PaymentID, entry)
		return nil, fiber.NewError(fiber.StatusBadGateway, "failed to create payment transaction")
	}

	if err := paymentRepo.UpdatePaymentFields(ctx, s.DB, payment.PaymentID, map[string]any{
		"payment_gateway_token": checkout.Token,
		"payment_redirect_url":  checkout.RedirectURL,
	}); err != nil {
		// row sudah ada dengan order id → webhook tetap bisa rekonsiliasi
		entry.WithError(err).Warn("persist checkout token failed")
	}

	entry.Info("order placed")
	return &dto.PlaceOrderResponse{
		Token:       checkout.Token,
		RedirectURL: checkout.RedirectURL,
		OrderID:     orderID,
		BookingCode: booking.BookingCode,
		BookingID:   booking.BookingID,
	}, nil
}

// insertWithFreshCode: kode bentrok → generate ulang di savepoint.
func (s *OrderService) insertWithFreshCode(ctx context.Context, tx *gorm.DB, b *model.Booking) error {
	var lastErr error
	for attempt := 0; attempt < bookingCodeAttempts; attempt++ {
		b.BookingCode = s.NewBookingCode()
		lastErr = tx.Transaction(func(sp *gorm.DB) error {
			return repository.CreateBooking(ctx, sp, b)
		})
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, gorm.ErrDuplicatedKey) {
			return lastErr
		}
		s.Log.WithField("booking_code", b.BookingCode).Warn("booking code collision, regenerating")
	}
	return lastErr
}

func (s *OrderService) compensate(ctx context.Context, bookingID, paymentID uuid.UUID, entry *logrus.Entry) {
	if err := paymentRepo.UpdatePaymentFields(ctx, s.DB, paymentID, map[string]any{
		"payment_status": paymentModel.PaymentStatusRejected,
	}); err != nil {
		entry.WithError(err).Error("compensate payment failed")
	}
	if err := repository.UpdateBookingStatus(ctx, s.DB, bookingID, model.BookingStatusCancelled); err != nil {
		entry.WithError(err).Error("compensate booking failed")
	}
}

/* =========================================================
   RETRY PAYMENT
========================================================= */

func (s *OrderService) RetryPayment(ctx context.Context, bookingID uuid.UUID) (*dto.RetryPaymentResponse, error) {
	d, err := repository.FindBookingDetail(ctx, s.DB, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "booking not found")
		}
		s.Log.WithError(err).WithField("booking_id", bookingID).Error("load booking failed")
		return nil, errInternal
	}
	if d.IsSettled() {
		return nil, fiber.NewError(fiber.StatusConflict, "booking is already paid")
	}

	orderID := GenerateOrderID(s.OrderPrefix, s.Now())
	entry := s.Log.WithFields(logrus.Fields{"booking_id": bookingID, "order_id": orderID})

	checkout, err := s.Gateway.CreateCheckout(ctx, paymentService.CheckoutRequest{
		OrderID:        orderID,
		Amount:         d.BookingTotalCostIDR,
		CustomerName:   deref(d.CustomerName, fallbackCustomerName),
		CustomerEmail:  deref(d.CustomerEmail, fallbackCustomerEmail),
		CustomerPhone:  deref(d.CustomerPhone, fallbackCustomerPhone),
		PackageID:      d.BookingPackageID.String(),
		PackageName:    deref(d.PackageName, fallbackPackageName),
		PassengerCount: d.BookingPassengerCount,
		BookingCode:    d.BookingCode,
	})
	if err != nil {
		entry.WithError(err).Error("gateway checkout failed on retry")
		return nil, fiber.NewError(fiber.StatusBadGateway, "failed to create payment transaction")
	}

	pending, err := paymentRepo.FindPendingPaymentByBooking(ctx, s.DB, bookingID)
	switch {
	case err == nil:
		err = paymentRepo.UpdatePaymentFields(ctx, s.DB, pending.PaymentID, map[string]any{
			"payment_gateway_order_id": orderID,
			"payment_gateway_token":    checkout.Token,
			"payment_redirect_url":     checkout.RedirectURL,
			"payment_amount_idr":       d.BookingTotalCostIDR,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = paymentRepo.CreatePayment(ctx, s.DB, &paymentModel.Payment{
			PaymentBookingID:      bookingID,
			PaymentAmountIDR:      d.BookingTotalCostIDR,
			PaymentStatus:         paymentModel.PaymentStatusPending,
			PaymentGatewayOrderID: orderID,
			PaymentGatewayToken:   &checkout.Token,
			PaymentRedirectURL:    &checkout.RedirectURL,
		})
	}
	if err != nil {
		entry.WithError(err).Error("persist retried payment failed")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to save payment")
	}

	entry.Info("payment retried")
	return &dto.RetryPaymentResponse{Token: checkout.Token, RedirectURL: checkout.RedirectURL, OrderID: orderID}, nil
}

/* =========================================================
   MANUAL CONFIRMATION (admin)
========================================================= */

func (s *OrderService) ConfirmPayment(ctx context.Context, bookingID, adminID uuid.UUID) (*dto.ConfirmPaymentResponse, error) {
	now := s.Now()
	entry := s.Log.WithFields(logrus.Fields{"booking_id": bookingID, "admin_id": adminID})
	out := &dto.ConfirmPaymentResponse{BookingID: bookingID}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := repository.FindBookingByID(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		p, err := paymentRepo.FindLatestPaymentByBooking(ctx, tx, bookingID)
		switch {
		case err == nil:
			fields := map[string]any{
				"payment_status":      paymentModel.PaymentStatusVerified,
				"payment_verified_by": adminID,
			}
			if p.PaymentVerifiedAt == nil {
				fields["payment_verified_at"] = now
			}
			if p.PaymentMethod == nil {
				fields["payment_method"] = paymentModel.PaymentMethodManual
			}
			if err := paymentRepo.UpdatePaymentFields(ctx, tx, p.PaymentID, fields); err != nil {
				return err
			}
			out.PaymentID = p.PaymentID

		case errors.Is(err, gorm.ErrRecordNotFound):
			method := paymentModel.PaymentMethodManual
			manual := &paymentModel.Payment{
				PaymentBookingID:      b.BookingID,
				PaymentAmountIDR:      b.BookingTotalCostIDR,
				PaymentStatus:         paymentModel.PaymentStatusVerified,
				PaymentMethod:         &method,
				PaymentGatewayOrderID: GenerateOrderID("MANUAL", now),
				PaymentVerifiedAt:     &now,
				PaymentVerifiedBy:     &adminID,
			}
			if err := paymentRepo.CreatePayment(ctx, tx, manual); err != nil {
				return err
			}
			out.PaymentID = manual.PaymentID

		default:
			return err
		}

		return repository.UpdateBookingStatus(ctx, tx, bookingID, model.BookingStatusConfirmed)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "booking not found")
		}
		entry.WithError(err).Error("manual confirmation failed")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to confirm payment")
	}
	out.BookingStatus = model.BookingStatusConfirmed
	out.PaymentStatus = paymentModel.PaymentStatusVerified
	entry.Info("payment confirmed manually")

	if err := s.Publisher.Publish(ctx, events.RoutingBookingConfirmed, events.BookingEvent{
		BookingID:  bookingID,
		Status:     string(model.BookingStatusConfirmed),
		Source:     "manual",
		OccurredAt: now,
	}); err != nil {
		entry.WithError(err).Warn("publish booking.confirmed failed")
	}

	if s.Schedules != nil {
		res, err := s.Schedules.CreateForBooking(ctx, bookingID)
		if err != nil {
			entry.WithError(err).Warn("schedule generation after confirmation failed")
		} else {
			out.ScheduleID = &res.ScheduleID
			out.ScheduleCreated = res.Created
		}
	}
	return out, nil
}

/* =========================================================
   STATUS
========================================================= */

// GetStatus: status booking & payment terbaru dari store, bukan dari redirect gateway.
func (s *OrderService) GetStatus(ctx context.Context, code string) (*dto.BookingStatusResponse, error) {
	d, err := repository.FindBookingDetailByCode(ctx, s.DB, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "booking not found")
		}
		s.Log.WithError(err).WithField("booking_code", code).Error("load booking failed")
		return nil, errInternal
	}

	p, err := paymentRepo.FindLatestPaymentByBooking(ctx, s.DB, d.BookingID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.Log.WithError(err).WithField("booking_id", d.BookingID).Error("load payment failed")
		return nil, errInternal
	}

	out := dto.FromBookingDetail(d, p)
	return &out, nil
}

/* =========================================================
   Utils
========================================================= */

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
