package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourku_backend/internals/features/payments/service/mocks"
	scheduleService "tourku_backend/internals/features/schedules/service"
	helper "tourku_backend/internals/helpers"
	"tourku_backend/internals/helpers/testdb"
)

const (
	jwtSecret  = "route-test-secret"
	cronSecret = "route-cron-secret"
)

func newApp(t *testing.T) (*fiber.App, uuid.UUID) {
	t.Helper()
	db := testdb.Open(t)
	log, _ := logtest.NewNullLogger()

	admin := uuid.New()
	testdb.SeedAdmin(t, db, admin, true)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	SetupRoutes(app, Deps{
		DB:                db,
		Log:               log,
		Gateway:           mocks.NewGateway(t),
		Generator:         scheduleService.NewGenerator(db, log),
		Sweeper:           scheduleService.NewSweeper(db, nil, log),
		JWTSecret:         jwtSecret,
		CronSecret:        cronSecret,
		MidtransServerKey: "SB-Mid-server-test",
	})
	return app, admin
}

func send(t *testing.T, app *fiber.App, method, path, bearer, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func sign(t *testing.T, sub uuid.UUID) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub.String()}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return s
}

func TestHealth(t *testing.T) {
	app, _ := newApp(t)

	code, body := send(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, `"database":"Connected"`)
	assert.Contains(t, body, `"redis":"disabled"`)
}

func TestAdminPrefixGuards(t *testing.T) {
	app, admin := newApp(t)
	confirm := "/api/a/bookings/" + uuid.NewString() + "/confirm-payment"

	// cron secret hanya berlaku untuk sweep
	code, _ := send(t, app, http.MethodPost, "/api/a/schedules/expire", cronSecret, "")
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = send(t, app, http.MethodPost, confirm, cronSecret, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = send(t, app, http.MethodPost, "/api/a/schedules/expire", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _ = send(t, app, http.MethodPost, confirm, sign(t, uuid.New()), "")
	assert.Equal(t, fiber.StatusForbidden, code)

	// admin lolos guard; booking tidak ada
	code, _ = send(t, app, http.MethodPost, confirm, sign(t, admin), "")
	assert.Equal(t, fiber.StatusNotFound, code)
	code, _ = send(t, app, http.MethodPost, "/api/a/schedules/expire", sign(t, admin), "")
	assert.Equal(t, fiber.StatusOK, code)
}

func TestPublicAndWebhookMounted(t *testing.T) {
	app, _ := newApp(t)

	code, _ := send(t, app, http.MethodGet, "/api/public/bookings/BKNOPE/status", "", "")
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = send(t, app, http.MethodPost, "/api/payments/midtrans/notification", "", "{not json")
	assert.Equal(t, fiber.StatusBadRequest, code)
}
