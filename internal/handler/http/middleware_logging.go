package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// withLogging writes one access line per request through the logger that
// withTraceID attached. Server errors log at error level and client errors
// at warn. Headers and bodies are never logged.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()
		uri := r.RequestURI

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		status := rw.statusOrOK()
		event := log.WithLevel(accessLevel(status)).
			Str("method", r.Method).
			Str("uri", uri).
			Int("status", status).
			Int("size", rw.size).
			Dur("duration", time.Since(start))

		// chi fills the pattern while routing, after our middleware started.
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				event = event.Str("route", pattern)
			}
		}
		event.Msg("request served")
	})
}

func accessLevel(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
