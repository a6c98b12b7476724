package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_Orders(t *testing.T) {
	m := New()

	m.OrderPlaced(90 * time.Second)
	m.OrderPlaced(3 * time.Minute)
	m.OrderRemoved()

	body := scrape(t, m)
	assert.Contains(t, body, "orders_placed_total 2")
	assert.Contains(t, body, "orders_removed_total 1")
	assert.Contains(t, body, "order_prep_offset_minutes_count 2")
	assert.Contains(t, body, "order_prep_offset_minutes_sum 4.5")
}

func TestMetrics_Requests(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/menu", "200", 5*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/menu",status="200"} 1`)
	assert.Contains(t, body, `http_request_duration_seconds_count{method="GET",route="/menu"} 1`)
	assert.Contains(t, body, "orders_placed_total 0")
}
