// Package media resolves content-addressed asset identifiers ("public ids")
// to CDN URLs at render time.
//
// Documents never store absolute CDN URLs; they store the public id and the
// URL is templated on the way out, so a CDN account change never leaves
// broken links in stored content. Blocks may carry a literal fallback URL
// for non-CDN assets.
package media

import (
	"net/url"
	"strings"
)

// Kind selects the CDN delivery pipeline for an asset.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Resolver templates Cloudinary delivery URLs for a configured cloud name.
type Resolver struct {
	cloudName string
	baseURL   string
}

// NewResolver creates a Resolver for the given Cloudinary cloud name.
func NewResolver(cloudName string) *Resolver {
	return &Resolver{
		cloudName: cloudName,
		baseURL:   "https://res.cloudinary.com",
	}
}

// URL resolves a public id to a full delivery URL:
//
//	https://res.cloudinary.com/<cloud>/<kind>/upload/<transform>/<publicId>
//
// transform may be empty. An empty public id resolves to "" (render nothing).
func (r *Resolver) URL(kind Kind, transform, publicID string) string {
	if publicID == "" || r.cloudName == "" {
		return ""
	}
	parts := []string{r.baseURL, r.cloudName, string(kind), "upload"}
	if transform != "" {
		parts = append(parts, transform)
	}
	parts = append(parts, escapePublicID(publicID))
	return strings.Join(parts, "/")
}

// ImageURL resolves an image public id with the standard web transform.
func (r *Resolver) ImageURL(publicID string) string {
	return r.URL(KindImage, "f_auto,q_auto", publicID)
}

// VideoURL resolves a video public id.
func (r *Resolver) VideoURL(publicID string) string {
	return r.URL(KindVideo, "f_auto,q_auto", publicID)
}

// Resolve picks the CDN URL for a public id, or the literal fallback URL
// when no public id is set. Returns "" when neither is present.
func (r *Resolver) Resolve(kind Kind, publicID, fallbackURL string) string {
	if publicID != "" {
		if kind == KindVideo {
			return r.VideoURL(publicID)
		}
		return r.ImageURL(publicID)
	}
	return fallbackURL
}

// Host returns the CDN host this resolver delivers from. The media proxy
// allow-list includes it by default.
func (r *Resolver) Host() string {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// escapePublicID escapes path segments while preserving the folder
// separators Cloudinary public ids use.
func escapePublicID(id string) string {
	segs := strings.Split(id, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
