package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/rs/zerolog"
)

const (
	traceIDHeader = utils.TraceIDHeader

	// maxTraceIDLength bounds caller supplied ids before they reach logs.
	maxTraceIDLength = 128
)

type traceIDGenerator interface {
	Generate() string
}

// withTraceID tags the request logger and the response with a trace id.
// A caller supplied X-Trace-ID is reused when it is short and made of
// visible ASCII; anything else is replaced.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID(traceID) {
			traceID = h.traceIDs.Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
