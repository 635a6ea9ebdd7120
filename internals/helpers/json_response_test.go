package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, h fiber.Handler) (int, ErrorResponse) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out ErrorResponse
	require.NoError(t, sonic.Unmarshal(b, &out))
	return resp.StatusCode, out
}

func TestJsonError(t *testing.T) {
	code, body := call(t, func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusConflict, "booking sudah lunas") })
	assert.Equal(t, fiber.StatusConflict, code)
	assert.False(t, body.Success)
	assert.Equal(t, "booking sudah lunas", body.Message)
	assert.Equal(t, "CONFLICT", body.ErrorCode)

	code, body = call(t, func(c *fiber.Ctx) error { return JsonError(c, 0, "") })
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
	assert.NotEmpty(t, body.Message)

	_, body = call(t, func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusBadGateway, "gateway down") })
	assert.Equal(t, "GATEWAY_ERROR", body.ErrorCode)
}

func TestJsonValidationError(t *testing.T) {
	code, body := call(t, func(c *fiber.Ctx) error {
		return JsonValidationError(c, map[string][]string{"customer_email": {"must be a valid email"}})
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", body.ErrorCode)
	assert.Equal(t, []string{"must be a valid email"}, body.Errors["customer_email"])
}

func TestErrorHandler(t *testing.T) {
	code, body := call(t, func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "booking not found") })
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "booking not found", body.Message)
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)

	// error non-fiber tidak membocorkan pesan internal
	code, body = call(t, func(c *fiber.Ctx) error { return errors.New("pq: connection refused") })
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body.Message)
}

func TestJsonOKAndCreated(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return JsonOK(c, "", fiber.Map{"id": 1}) })
	app.Get("/created", func(c *fiber.Ctx) error { return JsonCreated(c, "", nil) })

	for path, want := range map[string]struct {
		code int
		msg  string
	}{
		"/ok":      {fiber.StatusOK, "ok"},
		"/created": {fiber.StatusCreated, "created"},
	} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, want.code, resp.StatusCode, path)

		b, _ := io.ReadAll(resp.Body)
		var out struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		require.NoError(t, sonic.Unmarshal(b, &out))
		assert.True(t, out.Success)
		assert.Equal(t, want.msg, out.Message)
	}
}
