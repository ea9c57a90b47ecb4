package messagesapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the authenticated inbox router.
//
// When mounted at /api/messages:
//   - GET    /api/messages      - list with seen/resolved/page/limit filters
//   - GET    /api/messages/{id} - fetch one
//   - PATCH  /api/messages/{id} - update seen/resolved flags
//   - DELETE /api/messages/{id} - delete
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Patch)
	r.Delete("/{id}", h.Delete)

	return r
}

// PublicRoutes returns the unauthenticated submission router.
//
// When mounted at /api/contact:
//   - POST /api/contact - submit a message (rate limited per client IP)
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	return r
}
