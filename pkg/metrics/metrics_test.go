package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "salon-scheduler")

	m.IncConflict("time_overlap", "warning")
	m.IncConflict("time_overlap", "warning")
	m.IncTransition("pending", "confirmed")
	m.ObserveHTTPRequest("GET", "/api/v1/available-slots", 200, 15*time.Millisecond)
	m.IncCache("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.conflicts.WithLabelValues("time_overlap", "warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("pending", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/available-slots", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("hit")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncConflict("double_booking", "error")
		m.ObserveSlots(3)
	})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "salon_scheduler", sanitize("salon-scheduler"))
}
