// Package apicors provides CORS middleware for the admin JSON API.
//
// The admin API authenticates with a bearer API key, not cookies, so the
// CORS policy can be permissive: any origin, no credentials. The public
// HTML site never goes through this middleware.
package apicors

import (
	"net/http"
)

// Middleware returns CORS middleware suitable for API key authenticated
// endpoints. It allows any origin, does not allow credentials, and answers
// preflight OPTIONS requests directly.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
