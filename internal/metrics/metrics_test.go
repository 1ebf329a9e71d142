package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	r, err := NewRecorder(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r
}

func TestRecorderCountsOrderEvents(t *testing.T) {
	r := newTestRecorder(t)
	r.OrderPlaced(model.PaymentMethodCOD)
	r.OrderPlaced(model.PaymentMethodCOD)
	r.PlacementFailed("gateway_unavailable")
	r.StatusChanged(model.OrderStatusPending, model.OrderStatusProcessing)

	if got := testutil.ToFloat64(r.placed.WithLabelValues("COD")); got != 2 {
		t.Fatalf("expected 2 placed orders, got %v", got)
	}
	if got := testutil.ToFloat64(r.failures.WithLabelValues("gateway_unavailable")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
	if got := testutil.ToFloat64(r.transitions.WithLabelValues("pending", "processing")); got != 1 {
		t.Fatalf("expected 1 transition, got %v", got)
	}
}

func TestRecorderObserveRequest(t *testing.T) {
	r := newTestRecorder(t)
	r.ObserveRequest("/api/orders", http.StatusCreated, 12*time.Millisecond)

	if got := testutil.ToFloat64(r.requests.WithLabelValues("/api/orders", "201")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
	if got := testutil.CollectAndCount(r.latencyMS); got != 1 {
		t.Fatalf("expected one latency series, got %d", got)
	}
}

func TestRecorderRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewRecorder(reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewRecorder(reg); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.OrderPlaced(model.PaymentMethodCard)
	r.PlacementFailed("x")
	r.StatusChanged(model.OrderStatusPending, model.OrderStatusCancelled)
	r.ObserveRequest("/", http.StatusOK, time.Millisecond)
	if r.Handler() == nil {
		t.Fatal("expected fallback handler")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := newTestRecorder(t)
	r.OrderPlaced(model.PaymentMethodGatewayRedirect)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "toystore_orders_placed_total") {
		t.Fatalf("metrics output missing counter: %s", rec.Body.String())
	}
}

func TestNewRegistryIncludesRuntimeCollectors(t *testing.T) {
	families, err := newRegistry().Gather()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected runtime metric families")
	}
}
