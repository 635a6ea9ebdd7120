package controller_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourku_backend/internals/features/bookings/controller"
	"tourku_backend/internals/features/bookings/model"
	"tourku_backend/internals/features/bookings/route"
	"tourku_backend/internals/features/bookings/service"
	packageModel "tourku_backend/internals/features/packages/model"
	paymentService "tourku_backend/internals/features/payments/service"
	"tourku_backend/internals/features/payments/service/mocks"
	helper "tourku_backend/internals/helpers"
	"tourku_backend/internals/helpers/testdb"
	"tourku_backend/internals/middlewares/auth"
)

const jwtSecret = "test-secret"

type env struct {
	app *fiber.App
	db  *gorm.DB
	gw  *mocks.Gateway
	pkg *packageModel.TourPackage
}

func setup(t *testing.T) *env {
	t.Helper()
	db := testdb.Open(t)
	log, _ := logtest.NewNullLogger()
	gw := mocks.NewGateway(t)

	ctl := controller.NewBookingController(service.NewOrderService(db, gw, nil, nil, "TOUR", log))
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.ErrorHandler,
	})
	jwtAuth := auth.AuthJWT(auth.AuthJWTOpts{Secret: jwtSecret})
	route.BookingPublicRoutes(app.Group("/api/public"), ctl, auth.AuthJWT(auth.AuthJWTOpts{Secret: jwtSecret, Optional: true}))
	route.BookingAdminRoutes(app.Group("/api/a"), ctl, jwtAuth, auth.IsAdmin(db, log))

	return &env{app: app, db: db, gw: gw, pkg: testdb.SeedPackage(t, db, "Bali 3D2N", 1_100_000)}
}

func (e *env) send(t *testing.T, method, path, body, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func token(t *testing.T, sub uuid.UUID) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub.String()}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return s
}

func (e *env) orderBody() string {
	return `{"package_id":"` + e.pkg.TourPackageID.String() + `","customer_name":"Budi","customer_email":"budi@example.com",` +
		`"customer_phone":"0812","passenger_count":3,"departure_date":"2026-10-20","total_amount":3300000}`
}

func TestPlaceOrder_Created(t *testing.T) {
	e := setup(t)
	e.gw.On("CreateCheckout", mock.Anything, mock.Anything).
		Return(&paymentService.Checkout{Token: "snap-1", RedirectURL: "https://pay/snap-1"}, nil).Once()

	resp, body := e.send(t, http.MethodPost, "/api/public/bookings/orders", e.orderBody(), "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Contains(t, body, `"token":"snap-1"`)
	assert.Contains(t, body, `"booking_code"`)
}

func TestPlaceOrder_TokenUserAttached(t *testing.T) {
	e := setup(t)
	e.gw.On("CreateCheckout", mock.Anything, mock.Anything).Return(&paymentService.Checkout{Token: "snap-1"}, nil).Once()
	user := uuid.New()

	resp, _ := e.send(t, http.MethodPost, "/api/public/bookings/orders", e.orderBody(), token(t, user))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var b model.Booking
	require.NoError(t, e.db.First(&b).Error)
	require.NotNil(t, b.BookingUserID)
	assert.Equal(t, user, *b.BookingUserID)
}

func TestPlaceOrder_Validation(t *testing.T) {
	e := setup(t)

	resp, _ := e.send(t, http.MethodPost, "/api/public/bookings/orders", `{"package_id":`, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := e.send(t, http.MethodPost, "/api/public/bookings/orders",
		`{"package_id":"nope","customer_email":"not-an-email","total_amount":0,"departure_date":"20-10-2026"}`, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	for _, field := range []string{"package_id", "customer_name", "customer_email", "total_amount", "departure_date"} {
		assert.Contains(t, body, `"`+field+`"`)
	}

	// jumlah penumpang di atas batas ditolak sebelum menyentuh gateway
	tooMany := strings.Replace(e.orderBody(), `"passenger_count":3`, `"passenger_count":100000`, 1)
	resp, body = e.send(t, http.MethodPost, "/api/public/bookings/orders", tooMany, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, `"passenger_count"`)

	var n int64
	require.NoError(t, e.db.Model(&model.Booking{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPlaceOrder_UnknownPackage(t *testing.T) {
	e := setup(t)
	body := strings.Replace(e.orderBody(), e.pkg.TourPackageID.String(), uuid.NewString(), 1)

	resp, _ := e.send(t, http.MethodPost, "/api/public/bookings/orders", body, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetStatus(t *testing.T) {
	e := setup(t)
	b := testdb.SeedBooking(t, e.db, testdb.BookingSeed{Code: "ABCD123", PackageID: e.pkg.TourPackageID})

	resp, body := e.send(t, http.MethodGet, "/api/public/bookings/abcd123/status", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, b.BookingID.String())
	assert.Contains(t, body, `"booking_status":"pending"`)

	resp, _ = e.send(t, http.MethodGet, "/api/public/bookings/ZZZZ999/status", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRetryPayment_BadID(t *testing.T) {
	e := setup(t)

	resp, _ := e.send(t, http.MethodPost, "/api/public/bookings/not-a-uuid/retry-payment", "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestConfirmPayment_AdminOnly(t *testing.T) {
	e := setup(t)
	b := testdb.SeedBooking(t, e.db, testdb.BookingSeed{PackageID: e.pkg.TourPackageID})
	admin := uuid.New()
	testdb.SeedAdmin(t, e.db, admin, true)

	path := "/api/a/bookings/" + b.BookingID.String() + "/confirm-payment"

	resp, _ := e.send(t, http.MethodPost, path, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = e.send(t, http.MethodPost, path, "", token(t, uuid.New()))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body := e.send(t, http.MethodPost, path, "", token(t, admin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"booking_status":"confirmed"`)
	assert.Contains(t, body, `"schedule_id":null`)

	resp, _ = e.send(t, http.MethodPost, "/api/a/bookings/"+uuid.NewString()+"/confirm-payment", "", token(t, admin))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
