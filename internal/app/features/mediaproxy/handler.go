// Package mediaproxy streams CDN assets through the site's own origin.
//
// The proxy only fetches from an allow-listed set of hosts (the configured
// CDN plus any extras from config), so it cannot be used to relay arbitrary
// URLs. Responses carry a long immutable cache header; CDN assets are
// content-addressed by public id.
package mediaproxy

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dimondcastle/cms/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxAssetBytes caps a proxied asset (25 MiB).
const maxAssetBytes = 25 << 20

// Handler handles media proxy requests.
type Handler struct {
	allowedHosts map[string]bool
	client       *http.Client
	logger       *zap.Logger
}

// NewHandler creates a media proxy allowing the given hosts.
func NewHandler(hosts []string, logger *zap.Logger) *Handler {
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			allowed[h] = true
		}
	}
	return &Handler{
		allowedHosts: allowed,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}
}

// Get handles GET /?url=<https://cdn-host/...>.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		jsonutil.BadRequest(w, "missing url parameter")
		return
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		jsonutil.BadRequest(w, "invalid url")
		return
	}
	if !h.allowedHosts[strings.ToLower(u.Host)] {
		h.logger.Warn("media proxy refused host", zap.String("host", u.Host))
		jsonutil.Error(w, http.StatusForbidden, "host not allowed")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		jsonutil.BadRequest(w, "invalid url")
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn("media proxy fetch failed", zap.String("host", u.Host), zap.Error(err))
		jsonutil.Error(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		jsonutil.Error(w, http.StatusBadGateway, "upstream returned "+resp.Status)
		return
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "video/") {
		jsonutil.Error(w, http.StatusBadGateway, "unsupported content type")
		return
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, io.LimitReader(resp.Body, maxAssetBytes)); err != nil {
		// Headers already sent; nothing to do but log.
		h.logger.Debug("media proxy copy interrupted", zap.Error(err))
	}
}

// Routes returns the media proxy router. Mounted at /media.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}
