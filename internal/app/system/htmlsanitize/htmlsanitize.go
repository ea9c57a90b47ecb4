// Package htmlsanitize sanitizes the one place raw HTML enters the content
// model: embed blocks. All other block text is plain strings escaped at
// render time; embed HTML passes through bluemonday so a stored snippet can
// never inject script into the public site.
package htmlsanitize

import (
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	embedPolicy *bluemonday.Policy
	policyOnce  sync.Once
)

// getPolicy returns the shared embed sanitization policy.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// UGC policy plus iframes for map/video embeds. src is restricted to
		// https so protocol-relative and javascript: URLs are dropped.
		p := bluemonday.UGCPolicy()
		p.AllowElements("iframe")
		p.AllowAttrs("src", "width", "height", "title", "allow", "allowfullscreen", "frameborder", "loading").OnElements("iframe")
		p.AllowURLSchemes("https")
		embedPolicy = p
	})
	return embedPolicy
}

// SanitizeEmbed cleans an embed-block HTML snippet.
func SanitizeEmbed(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// EmbedHTML sanitizes an embed snippet and returns it as template.HTML,
// safe to place into rendered markup without further escaping.
func EmbedHTML(html string) template.HTML {
	return template.HTML(SanitizeEmbed(html))
}
