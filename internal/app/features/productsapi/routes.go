package productsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the products API router.
//
// When mounted at /api/products:
//   - GET    /api/products            - list with status/q/featured/inStock filters
//   - POST   /api/products            - create
//   - GET    /api/products/by-slug    - fetch by slug
//   - GET    /api/products/check-slug - slug availability pre-check
//   - GET    /api/products/{id}       - fetch by id
//   - PUT    /api/products/{id}       - full replace
//   - PATCH  /api/products/{id}       - partial update
//   - DELETE /api/products/{id}       - delete
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
