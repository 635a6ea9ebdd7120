package testdb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingModel "tourku_backend/internals/features/bookings/model"
	customerModel "tourku_backend/internals/features/customers/model"
	packageModel "tourku_backend/internals/features/packages/model"
	paymentModel "tourku_backend/internals/features/payments/model"
	adminModel "tourku_backend/internals/features/users/admins/model"
)

func SeedPackage(t testing.TB, db *gorm.DB, name string, price int64) *packageModel.TourPackage {
	t.Helper()
	p := &packageModel.TourPackage{
		TourPackageName:         name,
		TourPackagePriceIDR:     price,
		TourPackageDurationDays: 3,
		TourPackageIsActive:     true,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed package: %v", err)
	}
	return p
}

func SeedCustomer(t testing.TB, db *gorm.DB, email string) *customerModel.Customer {
	t.Helper()
	c := &customerModel.Customer{
		CustomerName:  "Budi Santoso",
		CustomerEmail: email,
		CustomerPhone: "081234567890",
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

// BookingSeed: nilai kosong diisi default yang masuk akal.
type BookingSeed struct {
	Code       string
	Status     bookingModel.BookingStatus
	Pax        int
	Total      int64
	Departure  *time.Time
	PackageID  uuid.UUID
	CustomerID uuid.UUID
}

func SeedBooking(t testing.TB, db *gorm.DB, s BookingSeed) *bookingModel.Booking {
	t.Helper()
	if s.PackageID == uuid.Nil {
		s.PackageID = SeedPackage(t, db, "Bali 3D2N", 1_100_000).TourPackageID
	}
	if s.CustomerID == uuid.Nil {
		s.CustomerID = SeedCustomer(t, db, uuid.NewString()[:8]+"@example.com").CustomerID
	}
	if s.Code == "" {
		s.Code = "BK" + uuid.NewString()[:6]
	}
	if s.Status == "" {
		s.Status = bookingModel.BookingStatusPending
	}
	if s.Pax == 0 {
		s.Pax = 1
	}
	if s.Total == 0 {
		s.Total = 1_100_000
	}
	b := &bookingModel.Booking{
		BookingCode:           s.Code,
		BookingCustomerID:     s.CustomerID,
		BookingPackageID:      s.PackageID,
		BookingPassengerCount: s.Pax,
		BookingDepartureDate:  s.Departure,
		BookingStatus:         s.Status,
		BookingTotalCostIDR:   s.Total,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func SeedPayment(t testing.TB, db *gorm.DB, bookingID uuid.UUID, orderID string, amount int64, status paymentModel.PaymentStatus) *paymentModel.Payment {
	t.Helper()
	p := &paymentModel.Payment{
		PaymentBookingID:      bookingID,
		PaymentAmountIDR:      amount,
		PaymentStatus:         status,
		PaymentGatewayOrderID: orderID,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return p
}

// SeedAdmin: admin non-aktif di-update setelah insert (default kolom = true).
func SeedAdmin(t testing.TB, db *gorm.DB, userID uuid.UUID, active bool) {
	t.Helper()
	if err := db.Create(&adminModel.Admin{AdminUserID: userID, AdminIsActive: true}).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if !active {
		if err := db.Model(&adminModel.Admin{}).Where("admin_user_id = ?", userID).Update("admin_is_active", false).Error; err != nil {
			t.Fatalf("deactivate admin: %v", err)
		}
	}
}

// Date: tanggal UTC tengah malam.
func Date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}
