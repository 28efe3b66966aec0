package http

import (
	"net/http"
	"strings"
)

// withCacheControl sets Cache-Control headers for the static frontend.
//
// Files under /assets/ carry a content hash in their name, so they are
// served as immutable for a year. HTML documents (including the SPA
// fallback) must always be revalidated so that a new deploy takes effect
// immediately.
func withCacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/assets/"):
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case r.URL.Path == "/" || strings.HasSuffix(r.URL.Path, ".html"):
			w.Header().Set("Cache-Control", "no-cache")
		}

		next.ServeHTTP(w, r)
	})
}
