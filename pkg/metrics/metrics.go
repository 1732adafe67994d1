package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	conflicts     *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	slotsServed   prometheus.Histogram
	cacheRequests *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	ns := sanitize(serviceName)

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "http_requests_total",
				Help:      "Count of HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		conflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "conflicts_detected_total",
				Help:      "Count of reservation conflicts detected by type and severity.",
			},
			[]string{"type", "severity"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "reservation_status_transitions_total",
				Help:      "Count of reservation status transitions.",
			},
			[]string{"from", "to"},
		),
		slotsServed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "available_slots_per_request",
				Help:      "Number of slots returned by availability queries.",
				Buckets:   []float64{0, 4, 8, 12, 16, 20, 24, 32, 48},
			},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "conflict_index_cache_total",
				Help:      "Conflict index cache lookups by result.",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.conflicts, m.transitions, m.slotsServed, m.cacheRequests)
	return m
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncConflict учитывает найденный конфликт
func (m *Metrics) IncConflict(conflictType, severity string) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(conflictType, severity).Inc()
}

// IncTransition учитывает смену статуса бронирования
func (m *Metrics) IncTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// ObserveSlots учитывает количество слотов в ответе
func (m *Metrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.slotsServed.Observe(float64(count))
}

// IncCache учитывает обращение к кэшу индекса конфликтов (hit, miss, error)
func (m *Metrics) IncCache(result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
