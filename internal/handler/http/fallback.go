package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// notFound answers unknown paths with the same {"detail": ...} body as every
// other error.
func notFound(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// methodNotAllowed answers a known path requested with an unregistered
// method. chi does not pass the allowed methods to a custom handler, so the
// Allow header is rebuilt from the router.
func methodNotAllowed(router chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := make([]string, 0, len(routeMethods))
		for _, method := range routeMethods {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}

		writeDetail(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	}
}

// routeMethods are the methods the router registers handlers for.
var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPatch,
	http.MethodDelete,
}
