package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbada/sisters-salon-reservation-sub001/pkg/logger"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	var seen string
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetActor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "X-Admin-ID")
	})

	t.Run("blank header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(AdminIDHeader, "   ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("actor in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(AdminIDHeader, " admin ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "admin", seen)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, given, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", seen)
}

type observed struct {
	method string
	route  string
	code   int
}

type recordingMetrics struct {
	calls []observed
}

func (m *recordingMetrics) ObserveHTTPRequest(method, route string, code int, _ time.Duration) {
	m.calls = append(m.calls, observed{method: method, route: route, code: code})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &recordingMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/reservations/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations/42", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{method: http.MethodGet, route: "/reservations/{id}", code: http.StatusNotFound}, m.calls[0])
}

func TestAccessLog(t *testing.T) {
	r := mux.NewRouter()
	r.Use(RequestID, AccessLog(logger.Nop()))
	r.HandleFunc("/healthz", okHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst then blocked", func(t *testing.T) {
		rl := NewRateLimiter(1, 2)
		defer rl.Close()
		now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return now }

		assert.True(t, rl.allow("admin:a"))
		assert.True(t, rl.allow("admin:a"))
		assert.False(t, rl.allow("admin:a"))
		assert.True(t, rl.allow("admin:b"), "each client has its own bucket")

		now = now.Add(time.Second)
		assert.True(t, rl.allow("admin:a"), "token refilled")
	})

	t.Run("idle clients are evicted", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Close()
		now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
		rl.now = func() time.Time { return now }

		rl.allow("ip:1.2.3.4")
		now = now.Add(11 * time.Minute)
		rl.evict()
		assert.Empty(t, rl.clients)
	})

	t.Run("middleware answers 429", func(t *testing.T) {
		rl := NewRateLimiter(0.001, 1)
		defer rl.Close()

		h := rl.Middleware()(http.HandlerFunc(okHandler))

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/reservations", nil))
		assert.Equal(t, http.StatusOK, first.Code)

		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/reservations", nil))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.Equal(t, "1", second.Header().Get("Retry-After"))

		other := httptest.NewRequest(http.MethodPost, "/reservations", nil)
		other.Header.Set(AdminIDHeader, "admin")
		third := httptest.NewRecorder()
		h.ServeHTTP(third, other)
		assert.Equal(t, http.StatusOK, third.Code)
	})
}
