package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/health", h.health)

	// read-only view of the resolved settings
	router.Get("/api/settings", h.listSettings)
	router.Get("/api/settings/{key}", h.getSetting)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
