package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)
	router.Use(withGzip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/example/ping", h.ping)
		r.Post("/api/example/items", h.createItem)
		r.Get("/api/example/items/{id}", h.getItem)
	})

	// routes requiring a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/auth/refresh", h.refresh)
		r.Get("/api/auth/profile", h.getProfile)
		r.Put("/api/auth/profile", h.updateProfile)
		r.Put("/api/auth/password", h.changePassword)
	})

	// everything that matched no API route is the single-page frontend
	router.NotFound(withCacheControl(http.HandlerFunc(h.serveSPA)).ServeHTTP)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
