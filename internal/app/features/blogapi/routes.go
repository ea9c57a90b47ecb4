package blogapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the blog API router.
//
// When mounted at /api/blogs:
//   - GET    /api/blogs            - list with status/q/page/limit filters
//   - POST   /api/blogs            - create
//   - GET    /api/blogs/by-slug    - fetch by slug
//   - GET    /api/blogs/check-slug - slug availability pre-check
//   - GET    /api/blogs/{id}       - fetch by id
//   - PUT    /api/blogs/{id}       - full replace
//   - PATCH  /api/blogs/{id}       - partial update
//   - DELETE /api/blogs/{id}       - delete
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
