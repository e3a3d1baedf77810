package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T, debug bool) (*echo.Echo, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"}}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)

	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/admin/users", func(c echo.Context) error {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil).Info("listing users")

		return c.String(http.StatusOK, deliverycontext.GetRequestID(c))
	})
	e.GET("/admin/broken", func(_ echo.Context) error { return echo.ErrBadRequest })

	return e, &buf
}

func TestRequestID_ReusesSaneHeader(t *testing.T) {
	e, buf := newTestEcho(t, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Contains(t, buf.String(), "request_id=abc-123")
	assert.Contains(t, buf.String(), "listing users")
}

func TestRequestID_ReplacesOversizedHeader(t *testing.T) {
	e, _ := newTestEcho(t, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, strings.Repeat("x", maxRequestIDLength+1))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	id := rec.Header().Get(deliverycontext.HeaderXRequestID)
	require.NotEmpty(t, id)
	assert.LessOrEqual(t, len(id), maxRequestIDLength)
	assert.Equal(t, id, rec.Body.String())
}

func TestLogger_QuietPathsOnlyInDebug(t *testing.T) {
	e, buf := newTestEcho(t, false)
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotContains(t, buf.String(), "HTTP Request")

	e, buf = newTestEcho(t, true)
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, buf.String(), "HTTP Request")
}

func TestLogger_LogsErrorsWithFinalStatus(t *testing.T) {
	e, buf := newTestEcho(t, false)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/broken", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=400")
}
