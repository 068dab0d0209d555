package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-user-accounts/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithMetrics_NilMetricsIsPassThrough(t *testing.T) {
	h := newTestHandler()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	wrapped := h.withMetrics(next)

	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWithMetrics_LabelsByRoutePattern(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	users := &mockUserService{}
	router := newTestRouter(t, nil, users, m)

	serve(router, http.MethodGet, "/users/1", "", nil)
	serve(router, http.MethodGet, "/users/2", "", nil)
	serve(router, http.MethodDelete, "/users/abc", "", nil)
	serve(router, http.MethodGet, "/missing", "", nil)

	expected := `
# HELP accounts_http_requests_total Total number of HTTP requests
# TYPE accounts_http_requests_total counter
accounts_http_requests_total{method="DELETE",route="/users/{id}",status="400"} 1
accounts_http_requests_total{method="GET",route="/users/{id}",status="500"} 2
accounts_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.CollectAndCompare(m.HTTPRequestsTotal, strings.NewReader(expected)))
	assert.Equal(t, 3, testutil.CollectAndCount(m.HTTPRequestDuration))
}
