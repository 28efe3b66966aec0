package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kispace/kispace-server/internal/utils"
)

// CheckHTTPMethod overrides chi's default 405 Method Not Allowed behaviour.
//
// When a request path matches a registered route but the HTTP method is not
// handled, the route's existence is hidden behind a 404 instead of a 405.
// API paths get the uniform JSON error body; everything else gets a bare
// status. If the method turns out to be registered after all, the request is
// delegated back to the router's normal pipeline.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			_, _ = utils.WriteError(w, "not found", http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}
}
