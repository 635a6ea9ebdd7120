package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "tourku_backend/internals/helpers"
	"tourku_backend/internals/helpers/testdb"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func do(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func whoami(c *fiber.Ctx) error {
	if id, ok := UserID(c); ok {
		return c.SendString(id.String())
	}
	return c.SendString("anonymous")
}

func TestAuthJWT(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/me", AuthJWT(AuthJWTOpts{Secret: secret}), whoami)

	uid := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodGet, "/me", sign(t, jwt.MapClaims{"sub": uid.String(), "exp": exp}, secret)).StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodGet, "/me", sign(t, jwt.MapClaims{"id": uid.String(), "exp": exp}, secret)).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, http.MethodGet, "/me", "").StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, http.MethodGet, "/me", sign(t, jwt.MapClaims{"sub": uid.String()}, "other")).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, http.MethodGet, "/me", sign(t, jwt.MapClaims{"sub": uid.String(), "exp": time.Now().Add(-time.Minute).Unix()}, secret)).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, http.MethodGet, "/me", sign(t, jwt.MapClaims{"sub": "not-a-uuid"}, secret)).StatusCode)
}

func TestAuthJWT_Optional(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/me", AuthJWT(AuthJWTOpts{Secret: secret, Optional: true}), whoami)

	resp := do(t, app, http.MethodGet, "/me", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// token rusak tetap ditolak
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, http.MethodGet, "/me", "garbage").StatusCode)
}

func TestIsAdminAndCron(t *testing.T) {
	db := testdb.Open(t)
	log, _ := logtest.NewNullLogger()

	admin, inactive, user := uuid.New(), uuid.New(), uuid.New()
	testdb.SeedAdmin(t, db, admin, true)
	testdb.SeedAdmin(t, db, inactive, false)

	jwtAuth := AuthJWT(AuthJWTOpts{Secret: secret})
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/admin", jwtAuth, IsAdmin(db, log), whoami)
	app.Post("/sweep", CronOrJWT("cron-secret", jwtAuth), IsAdmin(db, log), whoami)

	tok := func(id uuid.UUID) string { return sign(t, jwt.MapClaims{"sub": id.String()}, secret) }

	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodPost, "/admin", tok(admin)).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, do(t, app, http.MethodPost, "/admin", tok(inactive)).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, do(t, app, http.MethodPost, "/admin", tok(user)).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, http.MethodPost, "/admin", "cron-secret").StatusCode)

	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodPost, "/sweep", "cron-secret").StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodPost, "/sweep", tok(admin)).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, do(t, app, http.MethodPost, "/sweep", tok(user)).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, http.MethodPost, "/sweep", "wrong").StatusCode)
}
