package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	route := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}
	h := metrics.Instrument(route)(mux)

	for _, path := range []string{"/api/projects/a", "/api/projects/b", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	metrics.RateLimitHit(http.MethodPost, "ip")

	rec := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `projectboard_api_http_requests_total{method="GET",route="GET /api/projects/{id}",status="404"} 2`)
	assert.Contains(t, text, `projectboard_api_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, text, `projectboard_api_rate_limit_hits_total{key="ip",method="POST"} 1`)
	assert.Contains(t, text, "projectboard_api_http_request_duration_seconds_bucket")
}

func TestMetrics_NilRateLimitHit(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.RateLimitHit(http.MethodPost, "ip") })
}

func TestMetricsInstrument_CountsRecoveredPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	route := func(*http.Request) string { return "POST /api/projects" }
	h := metrics.Instrument(route)(Recovery(discardLogger())(panicking))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`projectboard_api_http_requests_total{method="POST",route="POST /api/projects",status="500"} 1`)
}
