package pagesapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the pages API router.
//
// When mounted at /api/pages:
//   - GET    /api/pages            - list with status/q/page/limit filters
//   - POST   /api/pages            - create
//   - GET    /api/pages/by-slug    - fetch by slug
//   - GET    /api/pages/check-slug - slug availability pre-check
//   - GET    /api/pages/{id}       - fetch by id
//   - PUT    /api/pages/{id}       - full replace
//   - PATCH  /api/pages/{id}       - partial update
//   - DELETE /api/pages/{id}       - delete
//
// API key auth and CORS are applied by the parent /api router.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/by-slug", h.GetBySlug)
	r.Get("/check-slug", h.CheckSlug)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Replace)
	r.Patch("/{id}", h.Patch)
	r.Delete("/{id}", h.Delete)

	return r
}
