package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHandler returns a Handler with a silent logger and no services.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop(), traceIDs: utils.NewUUIDGenerator()}
}

type fixedTraceID string

func (f fixedTraceID) Generate() string { return string(f) }

func executeWithTraceID(h *Handler, header string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if header != "" {
		req.Header.Set(traceIDHeader, header)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, captured
}

func TestWithTraceID_InboundID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "reused", header: "req-42", want: "req-42"},
		{name: "uuid reused", header: "0190b4a4-7c1e-7d3a-9f00-1b2c3d4e5f60", want: "0190b4a4-7c1e-7d3a-9f00-1b2c3d4e5f60"},
		{name: "missing", header: "", want: "generated"},
		{name: "contains space", header: "a b", want: "generated"},
		{name: "control character", header: "abc\x01", want: "generated"},
		{name: "non ascii", header: "трасса", want: "generated"},
		{name: "too long", header: strings.Repeat("a", maxTraceIDLength+1), want: "generated"},
		{name: "max length", header: strings.Repeat("a", maxTraceIDLength), want: strings.Repeat("a", maxTraceIDLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop(), traceIDs: fixedTraceID("generated")}

			rr, captured := executeWithTraceID(h, tt.header)

			require.NotNil(t, captured)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, rr.Header().Get(traceIDHeader))
		})
	}
}

func TestWithTraceID_GeneratesUUIDv7(t *testing.T) {
	h := newTestHandler()
	seen := make(map[string]struct{})

	for range 50 {
		rr, _ := executeWithTraceID(h, "")
		id := rr.Header().Get(traceIDHeader)

		parsed, err := uuid.Parse(id)
		require.NoError(t, err, "trace ID must be a UUID, got %q", id)
		assert.Equal(t, uuid.Version(7), parsed.Version())

		_, dup := seen[id]
		assert.False(t, dup, "duplicate trace ID %s", id)
		seen[id] = struct{}{}
	}
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.NewLoggerWithWriter(&buf, "test"), traceIDs: fixedTraceID("unused")}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside handler")
	})
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set(traceIDHeader, "trace-abc")

	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"trace-abc"`)
	assert.Contains(t, buf.String(), "inside handler")
}

func TestWithTraceID_OriginalRequestNotMutated(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	originalCtx := req.Context()

	h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, originalCtx, req.Context())
	assert.Empty(t, req.Header.Get(traceIDHeader))
}

func TestWithTraceID_ConcurrentRequests(t *testing.T) {
	h := newTestHandler()

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
		wg   sync.WaitGroup
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr, _ := executeWithTraceID(h, "")
			mu.Lock()
			seen[rr.Header().Get(traceIDHeader)] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}
