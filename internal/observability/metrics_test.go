package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

func TestMetricsRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRequest("/v1/carts/:id", http.MethodGet, 200, 15*time.Millisecond)
	m.RecordRequest("/v1/carts/:id", http.MethodGet, 200, 5*time.Millisecond)
	m.RecordError("/v1/carts/:id", http.MethodGet, "NOT_FOUND")
	m.RecordRateLimited()

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/v1/carts/:id", "200")); got != 2 {
		t.Fatalf("requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.errors.WithLabelValues(http.MethodGet, "/v1/carts/:id", "NOT_FOUND")); got != 1 {
		t.Fatalf("errors_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rateLimited); got != 1 {
		t.Fatalf("rate limited = %v, want 1", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", http.MethodGet, 200, time.Millisecond)
	m.RecordError("/", http.MethodGet, "X")
	m.RecordRateLimited()
}

func TestRequestLoggerUsesErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
	}})
	app.Use(RequestLogger(zaptest.NewLogger(t), m))
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("item", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/3", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/items/:id", "404")); got != 1 {
		t.Fatalf("requests_total{404} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Fatalf("in flight = %v, want 0", got)
	}
}
