package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerWithAppInfo(t *testing.T, svc service.AppInfoService) *Handler {
	t.Helper()
	return NewHandler(&service.Services{AppInfoService: svc}, config.Server{}, nil, logger.Nop())
}

func TestGetServerVersion(t *testing.T) {
	for _, want := range []string{"1.2.3", "v2.0.0-beta+build.42", ""} {
		t.Run(want, func(t *testing.T) {
			h := newHandlerWithAppInfo(t, &mockAppInfoService{version: want})

			rec := httptest.NewRecorder()
			h.getServerVersion(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, want, rec.Body.String())
			assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRoot(t *testing.T) {
	h := newHandlerWithAppInfo(t, &mockAppInfoService{})

	rec := httptest.NewRecorder()
	h.root(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, rec.Body.String())
}
