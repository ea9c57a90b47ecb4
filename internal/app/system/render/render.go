// Package render turns stored section/block trees into HTML for the public
// site.
//
// Rendering is total: a block or section the renderer does not recognize
// produces no output rather than an error, so a document written by a newer
// admin build never takes the site down. All text is escaped here; the only
// raw HTML path is the embed block, which goes through sanitization.
package render

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/dimondcastle/cms/internal/app/system/htmlsanitize"
	"github.com/dimondcastle/cms/internal/app/system/media"
	"github.com/dimondcastle/cms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Renderer renders content trees, resolving media public ids through the
// configured CDN.
type Renderer struct {
	media *media.Resolver
}

// New creates a Renderer.
func New(m *media.Resolver) *Renderer {
	return &Renderer{media: m}
}

// Sections renders an ordered section list for one locale.
func (r *Renderer) Sections(sections []models.Section, locale string) template.HTML {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(string(r.Section(s, locale)))
	}
	return template.HTML(b.String())
}

// Section renders one section. The key picks a fixed layout consuming the
// section's locale payload; any rows and blocks follow the layout inside the
// same wrapper. A section with an unrecognized key renders nothing.
func (r *Renderer) Section(s models.Section, locale string) template.HTML {
	if !models.IsValidSectionKey(s.Key) {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<section class="section section-` + esc(string(s.Key)) + `"`)
	if s.Style != "" {
		b.WriteString(` data-style="` + esc(s.Style) + `"`)
	}
	b.WriteString(">")

	if s.Label != "" {
		b.WriteString(`<h2 class="section-label">` + esc(s.Label) + `</h2>`)
	}

	b.WriteString(string(r.layout(s.Key, s.LocaleData(locale))))

	for _, row := range s.Rows {
		b.WriteString(string(r.Row(row)))
	}
	for _, blk := range s.Blocks {
		b.WriteString(string(r.Block(blk)))
	}

	b.WriteString("</section>")
	return template.HTML(b.String())
}

// layout dispatches to the key-specific layout template. The locale payload
// is read leniently: a missing or wrong-typed field omits that piece of the
// layout, never an error. Section shapes are validated at write time only.
func (r *Renderer) layout(key models.SectionKey, data map[string]any) template.HTML {
	if len(data) == 0 {
		return ""
	}
	switch key {
	case models.SectionHero:
		return r.hero(data)
	case models.SectionIntroStory:
		return r.story(data)
	case models.SectionVIPClients:
		return r.clients(data)
	case models.SectionSectors:
		return r.cards("sectors", data)
	case models.SectionServices:
		return r.cards("services", data)
	case models.SectionTransportSteps:
		return r.steps(data)
	case models.SectionContact:
		return r.contactIntro(data)
	case models.SectionRichText:
		// Rich text carries its content in rows/blocks, not a locale map.
		return ""
	}
	return ""
}

// hero expects {heading, subheading, bgPublicId, ctaLabel, ctaHref}.
func (r *Renderer) hero(data map[string]any) template.HTML {
	heading := str(data, "heading")
	sub := str(data, "subheading")
	bg := r.media.ImageURL(str(data, "bgPublicId"))
	if heading == "" && sub == "" && bg == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="hero"`)
	if bg != "" {
		b.WriteString(` style="background-image:url(` + esc(bg) + `)"`)
	}
	b.WriteString(">")
	if heading != "" {
		b.WriteString("<h1>" + esc(heading) + "</h1>")
	}
	if sub != "" {
		b.WriteString(`<p class="subheading">` + esc(sub) + "</p>")
	}
	ctaLabel := str(data, "ctaLabel")
	ctaHref := str(data, "ctaHref")
	if ctaLabel != "" && safeURL(ctaHref) {
		b.WriteString(`<a class="btn btn-primary" href="` + esc(ctaHref) + `">` + esc(ctaLabel) + `</a>`)
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// introStory expects {title, text, imagePublicId}.
func (r *Renderer) story(data map[string]any) template.HTML {
	title := str(data, "title")
	text := str(data, "text")
	img := r.media.ImageURL(str(data, "imagePublicId"))
	if title == "" && text == "" && img == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="story">`)
	if img != "" {
		b.WriteString(`<img src="` + esc(img) + `" alt="" loading="lazy">`)
	}
	if title != "" {
		b.WriteString("<h2>" + esc(title) + "</h2>")
	}
	if text != "" {
		b.WriteString("<p>" + esc(text) + "</p>")
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// vipClients expects {title, items: [{name, logoPublicId}]}.
func (r *Renderer) clients(data map[string]any) template.HTML {
	title := str(data, "title")
	items := itemList(data, "items")
	if title == "" && len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="clients">`)
	if title != "" {
		b.WriteString("<h2>" + esc(title) + "</h2>")
	}
	if len(items) > 0 {
		b.WriteString(`<ul class="client-logos">`)
		for _, it := range items {
			name := str(it, "name")
			logo := r.media.ImageURL(str(it, "logoPublicId"))
			if name == "" && logo == "" {
				continue
			}
			b.WriteString("<li>")
			if logo != "" {
				b.WriteString(`<img src="` + esc(logo) + `" alt="` + esc(name) + `" loading="lazy">`)
			}
			if name != "" {
				b.WriteString("<span>" + esc(name) + "</span>")
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// sectors and services share a card grid: {title, items: [{icon, name,
// description}]}.
func (r *Renderer) cards(class string, data map[string]any) template.HTML {
	title := str(data, "title")
	items := itemList(data, "items")
	if title == "" && len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="` + class + `">`)
	if title != "" {
		b.WriteString("<h2>" + esc(title) + "</h2>")
	}
	for _, it := range items {
		name := str(it, "name")
		desc := str(it, "description")
		if name == "" && desc == "" {
			continue
		}
		b.WriteString(`<div class="card">`)
		if icon := str(it, "icon"); icon != "" {
			b.WriteString(`<span class="icon icon-` + esc(icon) + `"></span>`)
		}
		if name != "" {
			b.WriteString("<h3>" + esc(name) + "</h3>")
		}
		if desc != "" {
			b.WriteString("<p>" + esc(desc) + "</p>")
		}
		b.WriteString("</div>")
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// transportSteps expects {title, items: [{title, description}]}; "name"
// doubles as a step title.
func (r *Renderer) steps(data map[string]any) template.HTML {
	title := str(data, "title")
	items := itemList(data, "items")
	if title == "" && len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="steps">`)
	if title != "" {
		b.WriteString("<h2>" + esc(title) + "</h2>")
	}
	if len(items) > 0 {
		b.WriteString("<ol>")
		for _, it := range items {
			st := str(it, "title")
			if st == "" {
				st = str(it, "name")
			}
			desc := str(it, "description")
			if st == "" && desc == "" {
				continue
			}
			b.WriteString("<li>")
			if st != "" {
				b.WriteString("<h3>" + esc(st) + "</h3>")
			}
			if desc != "" {
				b.WriteString("<p>" + esc(desc) + "</p>")
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ol>")
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// contact expects {title, text}; the form itself lives on the contact page.
func (r *Renderer) contactIntro(data map[string]any) template.HTML {
	title := str(data, "title")
	text := str(data, "text")
	if title == "" && text == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="contact-intro">`)
	if title != "" {
		b.WriteString("<h2>" + esc(title) + "</h2>")
	}
	if text != "" {
		b.WriteString("<p>" + esc(text) + "</p>")
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// str reads a string field from a locale payload; anything else is "".
func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// itemList reads an array-of-objects field from a locale payload. Payloads
// arrive as plain JSON maps from the API and as bson primitives when decoded
// from storage; both forms are accepted.
func itemList(m map[string]any, key string) []map[string]any {
	var raw []any
	switch v := m[key].(type) {
	case []any:
		raw = v
	case primitive.A:
		raw = []any(v)
	default:
		return nil
	}

	out := make([]map[string]any, 0, len(raw))
	for _, e := range raw {
		switch item := e.(type) {
		case map[string]any:
			out = append(out, item)
		case primitive.M:
			out = append(out, map[string]any(item))
		}
	}
	return out
}

// Row renders a grid row with its columns.
func (r *Renderer) Row(row models.Row) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="row`)
	if row.Align != "" {
		b.WriteString(" align-" + esc(row.Align))
	}
	b.WriteString(`">`)
	for _, col := range row.Cols {
		b.WriteString(string(r.Col(col)))
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// Col renders one grid column. Span values outside 1-12 fall back to full
// width.
func (r *Renderer) Col(col models.GridCol) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="col col-` + strconv.Itoa(clampSpan(col.Span)))
	if col.SpanMD > 0 {
		b.WriteString(" col-md-" + strconv.Itoa(clampSpan(col.SpanMD)))
	}
	if col.SpanLG > 0 {
		b.WriteString(" col-lg-" + strconv.Itoa(clampSpan(col.SpanLG)))
	}
	if col.Align != "" {
		b.WriteString(" align-" + esc(col.Align))
	}
	b.WriteString(`">`)
	for _, blk := range col.Blocks {
		b.WriteString(string(r.Block(blk)))
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

// Block renders a single block. Unknown types render nothing.
func (r *Renderer) Block(blk models.Block) template.HTML {
	switch blk.Type {
	case models.BlockHeading:
		return r.heading(blk)
	case models.BlockParagraph:
		if blk.Text == "" {
			return ""
		}
		return template.HTML("<p>" + esc(blk.Text) + "</p>")
	case models.BlockImage:
		return r.image(blk)
	case models.BlockVideo:
		return r.video(blk)
	case models.BlockList:
		return r.list(blk)
	case models.BlockQuote:
		return r.quote(blk)
	case models.BlockLink:
		return r.link(blk)
	case models.BlockEmbed:
		return htmlsanitize.EmbedHTML(blk.HTML)
	case models.BlockDivider:
		return "<hr>"
	case models.BlockButton:
		return r.button(blk)
	case models.BlockIconFeature:
		return r.iconFeature(blk)
	default:
		return ""
	}
}

func (r *Renderer) heading(blk models.Block) template.HTML {
	if blk.Text == "" {
		return ""
	}
	level := blk.Level
	if level < 1 || level > 6 {
		level = 2
	}
	tag := "h" + strconv.Itoa(level)
	return template.HTML("<" + tag + ">" + esc(blk.Text) + "</" + tag + ">")
}

func (r *Renderer) image(blk models.Block) template.HTML {
	src := r.media.Resolve(media.KindImage, blk.PublicID, blk.URL)
	if src == "" || !safeURL(src) {
		return ""
	}
	var b strings.Builder
	b.WriteString("<figure>")
	b.WriteString(`<img src="` + esc(src) + `" alt="` + esc(blk.Alt) + `" loading="lazy">`)
	if blk.Caption != "" {
		b.WriteString("<figcaption>" + esc(blk.Caption) + "</figcaption>")
	}
	b.WriteString("</figure>")
	return template.HTML(b.String())
}

func (r *Renderer) video(blk models.Block) template.HTML {
	src := r.media.Resolve(media.KindVideo, blk.PublicID, blk.URL)
	if src == "" || !safeURL(src) {
		return ""
	}
	var b strings.Builder
	b.WriteString("<figure>")
	b.WriteString(`<video controls preload="metadata" src="` + esc(src) + `"></video>`)
	if blk.Caption != "" {
		b.WriteString("<figcaption>" + esc(blk.Caption) + "</figcaption>")
	}
	b.WriteString("</figure>")
	return template.HTML(b.String())
}

func (r *Renderer) list(blk models.Block) template.HTML {
	if len(blk.Items) == 0 {
		return ""
	}
	tag := "ul"
	if blk.Ordered {
		tag = "ol"
	}
	var b strings.Builder
	b.WriteString("<" + tag + ">")
	for _, item := range blk.Items {
		b.WriteString("<li>" + esc(item) + "</li>")
	}
	b.WriteString("</" + tag + ">")
	return template.HTML(b.String())
}

func (r *Renderer) quote(blk models.Block) template.HTML {
	if blk.Text == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("<blockquote><p>" + esc(blk.Text) + "</p>")
	if blk.Cite != "" {
		b.WriteString("<cite>" + esc(blk.Cite) + "</cite>")
	}
	b.WriteString("</blockquote>")
	return template.HTML(b.String())
}

func (r *Renderer) link(blk models.Block) template.HTML {
	label := blk.Label
	if label == "" {
		label = blk.Href
	}
	if blk.Href == "" || label == "" {
		return ""
	}
	if !safeURL(blk.Href) {
		// A hostile href degrades to plain text instead of a live link.
		return template.HTML("<span>" + esc(label) + "</span>")
	}
	return template.HTML(`<a href="` + esc(blk.Href) + `">` + esc(label) + `</a>`)
}

func (r *Renderer) button(blk models.Block) template.HTML {
	label := blk.Label
	if label == "" {
		label = blk.Text
	}
	if blk.Href == "" || label == "" || !safeURL(blk.Href) {
		return ""
	}
	style := blk.Style
	if style == "" {
		style = "primary"
	}
	return template.HTML(`<a class="btn btn-` + esc(style) + `" href="` + esc(blk.Href) + `">` + esc(label) + `</a>`)
}

func (r *Renderer) iconFeature(blk models.Block) template.HTML {
	if blk.Title == "" && blk.Description == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="icon-feature">`)
	if blk.Icon != "" {
		b.WriteString(`<span class="icon icon-` + esc(blk.Icon) + `"></span>`)
	}
	if blk.Title != "" {
		b.WriteString("<h3>" + esc(blk.Title) + "</h3>")
	}
	if blk.Description != "" {
		b.WriteString("<p>" + esc(blk.Description) + "</p>")
	}
	b.WriteString("</div>")
	return template.HTML(b.String())
}

func clampSpan(n int) int {
	if n < 1 || n > 12 {
		return 12
	}
	return n
}

// safeURL accepts site-relative paths, fragments, http(s), mailto and tel
// targets. Everything else (javascript:, data:, protocol tricks) is refused.
func safeURL(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "#") {
		return true
	}
	lower := strings.ToLower(s)
	for _, p := range []string{"http://", "https://", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}
