// Package site renders the public marketing website in English and Arabic.
//
// English pages live at "/", Arabic mirrors under "/ar" with dir="rtl".
// Only published content is served; drafts 404 like anything else missing.
package site

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	blogstore "github.com/dimondcastle/cms/internal/app/store/blogs"
	messagestore "github.com/dimondcastle/cms/internal/app/store/messages"
	navstore "github.com/dimondcastle/cms/internal/app/store/nav"
	pagestore "github.com/dimondcastle/cms/internal/app/store/pages"
	productstore "github.com/dimondcastle/cms/internal/app/store/products"
	"github.com/dimondcastle/cms/internal/app/store/ratelimit"
	"github.com/dimondcastle/cms/internal/app/features/siteconfig"
	"github.com/dimondcastle/cms/internal/app/system/render"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler renders the public site.
type Handler struct {
	pages    *pagestore.Store
	blogs    *blogstore.Store
	products *productstore.Store
	nav      *navstore.Store
	messages *messagestore.Store
	limiter  *ratelimit.Store
	config   *siteconfig.Handler
	renderer *render.Renderer
	logger   *zap.Logger
}

// NewHandler creates a new public site Handler.
func NewHandler(db *mongo.Database, limiter *ratelimit.Store, config *siteconfig.Handler, renderer *render.Renderer, logger *zap.Logger) *Handler {
	return &Handler{
		pages:    pagestore.New(db),
		blogs:    blogstore.New(db),
		products: productstore.New(db),
		nav:      navstore.New(db),
		messages: messagestore.New(db),
		limiter:  limiter,
		config:   config,
		renderer: renderer,
		logger:   logger,
	}
}

// NavLink is a localized menu entry for templates.
type NavLink struct {
	Label    string
	Href     string
	Children []NavLink
}

// BaseVM carries the fields every public page needs.
type BaseVM struct {
	Lang     string
	Dir      string
	Title    string
	Desc     string
	SiteName string
	Nav      []NavLink
	Theme    models.ThemeSettings
	Contact  models.ContactInfo
	AltHref  string // the same page in the other locale
	Year     int
}

// base assembles the shared view model. Settings failures degrade to
// defaults; the public site stays up when Mongo flakes mid-request.
func (h *Handler) base(r *http.Request, locale string) BaseVM {
	vm := BaseVM{
		Lang: locale,
		Dir:  "ltr",
		Year: time.Now().Year(),
	}
	if locale == models.LocaleAR {
		vm.Dir = "rtl"
	}

	theme, err := h.config.Theme().Get(r.Context())
	if err != nil {
		h.logger.Warn("failed to load theme", zap.Error(err))
		theme = models.DefaultTheme()
	}
	vm.Theme = theme

	contact, err := h.config.Contact().Get(r.Context())
	if err != nil {
		h.logger.Warn("failed to load contact info", zap.Error(err))
		contact = models.DefaultContactInfo()
	}
	vm.Contact = contact

	seo, err := h.config.SEO().Get(r.Context())
	if err != nil {
		h.logger.Warn("failed to load site seo", zap.Error(err))
		seo = models.DefaultSiteSEO()
	}
	vm.SiteName = seo.SiteName.Get(locale)
	vm.Desc = seo.Description.Get(locale)

	items, err := h.nav.GetTree(r.Context())
	if err != nil {
		h.logger.Warn("failed to load navigation", zap.Error(err))
		items = nil
	}
	vm.Nav = localizeNav(items, locale)

	vm.AltHref = altHref(r.URL.Path, locale)
	return vm
}

// localizeNav projects the stored menu tree into one locale. Items with no
// label in either language are skipped.
func localizeNav(items []models.NavItem, locale string) []NavLink {
	out := make([]NavLink, 0, len(items))
	for _, it := range items {
		label := it.Label.Get(locale)
		if label == "" {
			continue
		}
		href := it.Href
		if it.Kind == models.NavInternal && locale == models.LocaleAR {
			href = arPath(href)
		}
		out = append(out, NavLink{
			Label:    label,
			Href:     href,
			Children: localizeNav(it.Children, locale),
		})
	}
	return out
}

// arPath maps an internal page path to its Arabic mirror.
func arPath(p string) string {
	if p == models.HomeSlug {
		return "/ar"
	}
	return "/ar" + p
}

// altHref computes the same URL in the other locale for the language
// switcher.
func altHref(path, locale string) string {
	if locale == models.LocaleAR {
		trimmed := strings.TrimPrefix(path, "/ar")
		if trimmed == "" {
			return "/"
		}
		return trimmed
	}
	return arPath(path)
}

// PageVM is the view model for a content page.
type PageVM struct {
	BaseVM
	Content template.HTML
}

// Page serves a page by its path-style slug for the given locale.
func (h *Handler) Page(locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := pageSlug(r.URL.Path, locale)

		page, err := h.pages.GetPublishedBySlug(r.Context(), slug)
		if err == mongo.ErrNoDocuments {
			h.NotFound(locale)(w, r)
			return
		}
		if err != nil {
			h.logger.Error("failed to load page", zap.String("slug", slug), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		content := page.Content(locale)
		sections := content.Sections
		if slug == models.HomeSlug {
			sections = h.withHeroSettings(r, sections)
		}
		vm := PageVM{
			BaseVM:  h.base(r, locale),
			Content: h.renderer.Sections(sections, locale),
		}
		vm.Title = content.Title
		if content.SEO != nil && content.SEO.Description != "" {
			vm.Desc = content.SEO.Description
		}

		templates.Render(w, r, "site/page", vm)
	}
}

// withHeroSettings fills the home page's hero section from the hero
// settings singleton when the section has no content of its own. The
// landing hero stays editable as a settings form rather than a page edit.
func (h *Handler) withHeroSettings(r *http.Request, sections []models.Section) []models.Section {
	hero, err := h.config.Hero().Get(r.Context())
	if err != nil {
		h.logger.Warn("failed to load hero settings", zap.Error(err))
		return sections
	}
	for i, s := range sections {
		if s.Key != models.SectionHero {
			continue
		}
		if len(s.En) > 0 || len(s.Ar) > 0 || len(s.Blocks) > 0 || len(s.Rows) > 0 {
			continue
		}
		sections[i].En = heroData(hero, models.LocaleEN)
		sections[i].Ar = heroData(hero, models.LocaleAR)
	}
	return sections
}

// heroData projects the hero singleton into the hero section payload shape.
func heroData(hero models.HeroSettings, locale string) map[string]any {
	return map[string]any{
		"heading":    hero.Heading.Get(locale),
		"subheading": hero.Subheading.Get(locale),
		"bgPublicId": hero.BGPublicID,
		"ctaLabel":   hero.CTALabel.Get(locale),
		"ctaHref":    hero.CTAHref,
	}
}

// pageSlug maps the request path to a stored page slug, stripping the /ar
// prefix for Arabic requests.
func pageSlug(path, locale string) string {
	if locale == models.LocaleAR {
		path = strings.TrimPrefix(path, "/ar")
	}
	if path == "" {
		path = models.HomeSlug
	}
	return strings.TrimSuffix(path, "/") + pathSuffix(path)
}

// pathSuffix preserves "/" for the home page after trimming.
func pathSuffix(path string) string {
	if path == "/" {
		return "/"
	}
	return ""
}

// BlogIndexVM lists published posts.
type BlogIndexVM struct {
	BaseVM
	Posts []BlogCard
}

// BlogCard is one post in the index.
type BlogCard struct {
	Slug  string
	Title string
	Date  string
	Views int64
}

// BlogIndex serves the published blog listing.
func (h *Handler) BlogIndex(locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, _, err := h.blogs.List(r.Context(), blogstore.ListFilter{
			Status: models.StatusPublished,
			Limit:  50,
		})
		if err != nil {
			h.logger.Error("failed to list blog posts", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		vm := BlogIndexVM{BaseVM: h.base(r, locale)}
		vm.Title = "Blog"
		if locale == models.LocaleAR {
			vm.Title = "المدونة"
		}
		for _, p := range posts {
			href := "/blog/" + p.Slug
			if locale == models.LocaleAR {
				href = "/ar/blog/" + p.Slug
			}
			vm.Posts = append(vm.Posts, BlogCard{
				Slug:  href,
				Title: p.Content(locale).Title,
				Date:  p.CreatedAt.Format("2006-01-02"),
				Views: p.ViewCount,
			})
		}

		templates.Render(w, r, "site/blog_index", vm)
	}
}

// BlogPostVM is the view model for one post.
type BlogPostVM struct {
	BaseVM
	Content template.HTML
	Date    string
	Views   int64
}

// BlogPost serves one published post and bumps its view counter.
func (h *Handler) BlogPost(locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := lastSegment(r.URL.Path)

		post, err := h.blogs.GetPublishedBySlug(r.Context(), slug)
		if err == mongo.ErrNoDocuments {
			h.NotFound(locale)(w, r)
			return
		}
		if err != nil {
			h.logger.Error("failed to load blog post", zap.String("slug", slug), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := h.blogs.IncViews(r.Context(), slug); err != nil {
			h.logger.Debug("failed to bump view counter", zap.String("slug", slug), zap.Error(err))
		}

		content := post.Content(locale)
		vm := BlogPostVM{
			BaseVM:  h.base(r, locale),
			Content: h.renderer.Sections(content.Sections, locale),
			Date:    post.CreatedAt.Format("2006-01-02"),
			Views:   post.ViewCount + 1,
		}
		vm.Title = content.Title
		if content.SEO != nil && content.SEO.Description != "" {
			vm.Desc = content.SEO.Description
		}

		templates.Render(w, r, "site/blog_post", vm)
	}
}

// ProductIndexVM lists published products.
type ProductIndexVM struct {
	BaseVM
	Products []ProductCard
}

// ProductCard is one product in the catalog listing.
type ProductCard struct {
	Href     string
	Name     string
	Summary  string
	Featured bool
	InStock  bool
}

// ProductIndex serves the published product catalog.
func (h *Handler) ProductIndex(locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, _, err := h.products.List(r.Context(), productstore.ListFilter{
			Status: models.StatusPublished,
			Limit:  100,
		})
		if err != nil {
			h.logger.Error("failed to list products", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		vm := ProductIndexVM{BaseVM: h.base(r, locale)}
		vm.Title = "Products"
		if locale == models.LocaleAR {
			vm.Title = "المنتجات"
		}
		for _, p := range products {
			href := "/products/" + p.Slug
			if locale == models.LocaleAR {
				href = "/ar/products/" + p.Slug
			}
			loc := p.Content(locale)
			vm.Products = append(vm.Products, ProductCard{
				Href:     href,
				Name:     loc.Name,
				Summary:  loc.Summary,
				Featured: p.Featured,
				InStock:  p.InStock,
			})
		}

		templates.Render(w, r, "site/product_index", vm)
	}
}

// ProductVM is the view model for one product page.
type ProductVM struct {
	BaseVM
	Name    string
	Summary string
	InStock bool
	Content template.HTML
}

// Product serves one published product and bumps its view counter.
func (h *Handler) Product(locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := lastSegment(r.URL.Path)

		p, err := h.products.GetPublishedBySlug(r.Context(), slug)
		if err == mongo.ErrNoDocuments {
			h.NotFound(locale)(w, r)
			return
		}
		if err != nil {
			h.logger.Error("failed to load product", zap.String("slug", slug), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := h.products.IncViews(r.Context(), slug); err != nil {
			h.logger.Debug("failed to bump view counter", zap.String("slug", slug), zap.Error(err))
		}

		loc := p.Content(locale)
		vm := ProductVM{
			BaseVM:  h.base(r, locale),
			Name:    loc.Name,
			Summary: loc.Summary,
			InStock: p.InStock,
			Content: h.renderer.Sections(loc.Sections, locale),
		}
		vm.Title = loc.Name
		if loc.SEO != nil && loc.SEO.Description != "" {
			vm.Desc = loc.SEO.Description
		}

		templates.Render(w, r, "site/product", vm)
	}
}

// NotFound renders the localized 404 page.
func (h *Handler) NotFound(locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm := h.base(r, locale)
		vm.Title = "Page not found"
		if locale == models.LocaleAR {
			vm.Title = "الصفحة غير موجودة"
		}
		w.WriteHeader(http.StatusNotFound)
		templates.Render(w, r, "site/notfound", vm)
	}
}

// lastSegment returns the final path segment.
func lastSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
