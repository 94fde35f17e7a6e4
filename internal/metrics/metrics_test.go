package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareRecordsMatchedPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	handler := Middleware(mux)
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "GET /api/v1/orders/{id}"))

	for _, id := range []string{"a", "b", "c"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+id, nil))
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, "GET /api/v1/orders/{id}"))
	assert.Equal(t, 3.0, after-before)
	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(deliveryTransitionsTotal.WithLabelValues("start"))

	DeliveryTransition("start")
	DeliveryTransition("start")

	assert.Equal(t, 2.0, testutil.ToFloat64(deliveryTransitionsTotal.WithLabelValues("start"))-before)

	CartSync("queued")
	assert.GreaterOrEqual(t, testutil.ToFloat64(cartSyncTotal.WithLabelValues("queued")), 1.0)
}
