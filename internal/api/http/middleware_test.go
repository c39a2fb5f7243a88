package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/tour-service/internal/config"
	"github.com/spec-kit/tour-service/internal/observability"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

func newMiddlewareTestApp(production bool) *fiber.App {
	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), observability.NewMetrics(), production))

	app.Get("/fail", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("tour")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success"})
	})
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestErrorMiddleware_OperationalError(t *testing.T) {
	app := newMiddlewareTestApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "No tour found with that ID", body["message"])
	assert.NotContains(t, body, "stack")
}

func TestErrorMiddleware_PanicBecomesGeneric500(t *testing.T) {
	app := newMiddlewareTestApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Something went very wrong!", body["message"])
	assert.NotContains(t, body, "error")
}

func TestErrorMiddleware_DevelopmentIncludesDetail(t *testing.T) {
	app := newMiddlewareTestApp(false)

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "fail", body["status"])
	assert.Contains(t, body, "error")
	assert.Contains(t, body, "stack")
}

func TestErrorMiddleware_PassesSuccessThrough(t *testing.T) {
	app := newMiddlewareTestApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegisterMiddlewares_LogsTranslatedStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), &config.Config{
		App: config.AppConfig{Env: "production"},
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("tour")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, fiber.StatusNotFound, entries[0].ContextMap()["status"])
}

func TestRateLimiter_NoClientPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(nil, config.RateLimitConfig{MaxRequests: 1, WindowMinutes: 60}, zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}
