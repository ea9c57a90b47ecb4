package navapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the navigation API router.
//
// When mounted at /api/nav:
//   - GET    /api/nav          - full menu tree
//   - PUT    /api/nav          - replace the whole tree
//   - DELETE /api/nav/{itemId} - remove one node and its subtree
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetTree)
	r.Put("/", h.ReplaceTree)
	r.Delete("/{itemId}", h.RemoveItem)

	return r
}
