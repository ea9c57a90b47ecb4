// internal/app/features/site/routes.go
package site

import (
	"net/http"

	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
)

// Routes returns the public site router.
//
// English:
//   - GET  /                   - home page
//   - GET  /blog               - blog index
//   - GET  /blog/{slug}        - blog post (bumps view counter)
//   - GET  /products           - product catalog
//   - GET  /products/{slug}    - product page (bumps view counter)
//   - GET  /contact            - contact page with form
//   - POST /contact            - form submission (CSRF protected)
//   - GET  /*                  - any other page by path slug
//
// Arabic mirrors the whole tree under /ar with dir="rtl".
func Routes(h *Handler, csrfKey []byte, secureCookies bool) http.Handler {
	r := chi.NewRouter()

	// CSRF covers the whole public site; only the contact POST consumes it,
	// the GETs just receive the cookie.
	r.Use(csrf.Protect(csrfKey,
		csrf.Secure(secureCookies),
		csrf.Path("/"),
	))

	mountLocale(r, h, models.LocaleEN, "")
	mountLocale(r, h, models.LocaleAR, "/ar")

	return r
}

func mountLocale(r chi.Router, h *Handler, locale, prefix string) {
	root := prefix
	if root == "" {
		root = "/"
	}

	r.Get(root, h.Page(locale))
	r.Get(prefix+"/blog", h.BlogIndex(locale))
	r.Get(prefix+"/blog/{slug}", h.BlogPost(locale))
	r.Get(prefix+"/products", h.ProductIndex(locale))
	r.Get(prefix+"/products/{slug}", h.Product(locale))
	r.Get(prefix+"/contact", h.ContactForm(locale))
	r.Post(prefix+"/contact", h.SubmitContact(locale))
	r.Get(prefix+"/*", h.Page(locale))
}
