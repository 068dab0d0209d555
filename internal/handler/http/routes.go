package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(h.withTraceID, withLogging, h.withMetrics, withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.root)
		r.Get("/api/version", h.getServerVersion)
		if h.metrics != nil {
			r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
		}

		r.Post("/token", h.login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.createUser)
			r.Get("/", h.listUsers)
			r.Get("/{id}", h.getUser)
			r.Patch("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)

			// routes with authorization
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Get("/me", h.me)
				r.Get("/me/", h.me)
			})
		})
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/token/refresh", h.refreshToken)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
