// Package siteconfig provides the admin JSON API for the site-wide
// settings singletons: theme, hero, story, vision, values, services,
// clients, contact info and SEO.
//
// Every resource behaves the same way: GET lazily creates the document
// from full defaults, PUT and PATCH merge the top-level keys present in
// the payload (last write wins), and POST /reset restores the defaults.
package siteconfig

import (
	"net/http"

	"github.com/dimondcastle/cms/internal/app/store/singleton"
	"github.com/dimondcastle/cms/internal/app/system/jsonutil"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the singleton stores for all settings resources.
type Handler struct {
	theme    *singleton.Store[models.ThemeSettings]
	hero     *singleton.Store[models.HeroSettings]
	story    *singleton.Store[models.StorySettings]
	vision   *singleton.Store[models.VisionSettings]
	values   *singleton.Store[models.ValuesSettings]
	services *singleton.Store[models.ServicesSettings]
	clients  *singleton.Store[models.ClientsSettings]
	contact  *singleton.Store[models.ContactInfo]
	seo      *singleton.Store[models.SiteSEO]
	logger   *zap.Logger
}

// NewHandler creates a new site configuration handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		theme:    singleton.New(db, "theme_settings", models.DefaultTheme),
		hero:     singleton.New(db, "hero_settings", models.DefaultHero),
		story:    singleton.New(db, "story_settings", models.DefaultStory),
		vision:   singleton.New(db, "vision_settings", models.DefaultVision),
		values:   singleton.New(db, "values_settings", models.DefaultValues),
		services: singleton.New(db, "services_settings", models.DefaultServices),
		clients:  singleton.New(db, "clients_settings", models.DefaultClients),
		contact:  singleton.New(db, "contact_info", models.DefaultContactInfo),
		seo:      singleton.New(db, "site_seo", models.DefaultSiteSEO),
		logger:   logger,
	}
}

// Theme returns the theme store for use by the public site renderer.
func (h *Handler) Theme() *singleton.Store[models.ThemeSettings] { return h.theme }

// Hero returns the hero store.
func (h *Handler) Hero() *singleton.Store[models.HeroSettings] { return h.hero }

// Contact returns the contact info store.
func (h *Handler) Contact() *singleton.Store[models.ContactInfo] { return h.contact }

// SEO returns the site SEO store.
func (h *Handler) SEO() *singleton.Store[models.SiteSEO] { return h.seo }

// mount wires the standard singleton endpoints for one resource:
//
//	GET    /{name}       - current value (created from defaults on first read)
//	PUT    /{name}       - merge top-level keys
//	PATCH  /{name}       - merge top-level keys
//	POST   /{name}/reset - restore defaults
func mount[T any](r chi.Router, name string, store *singleton.Store[T], logger *zap.Logger) {
	get := func(w http.ResponseWriter, req *http.Request) {
		v, err := store.Get(req.Context())
		if err != nil {
			logger.Error("failed to get settings", zap.String("resource", name), zap.Error(err))
			jsonutil.InternalError(w, "failed to get "+name)
			return
		}
		jsonutil.OK(w, v)
	}

	merge := func(w http.ResponseWriter, req *http.Request) {
		var fields map[string]any
		if err := jsonutil.Decode(w, req, &fields); err != nil {
			jsonutil.BadRequest(w, err.Error())
			return
		}

		v, err := store.Merge(req.Context(), fields)
		if err != nil {
			logger.Error("failed to update settings", zap.String("resource", name), zap.Error(err))
			jsonutil.InternalError(w, "failed to update "+name)
			return
		}

		logger.Info("settings updated", zap.String("resource", name), zap.Int("fields", len(fields)))
		jsonutil.OK(w, v)
	}

	reset := func(w http.ResponseWriter, req *http.Request) {
		v, err := store.Reset(req.Context())
		if err != nil {
			logger.Error("failed to reset settings", zap.String("resource", name), zap.Error(err))
			jsonutil.InternalError(w, "failed to reset "+name)
			return
		}

		logger.Info("settings reset", zap.String("resource", name))
		jsonutil.OK(w, v)
	}

	r.Route("/"+name, func(sr chi.Router) {
		sr.Get("/", get)
		sr.Put("/", merge)
		sr.Patch("/", merge)
		sr.Post("/reset", reset)
	})
}

// Routes returns the settings API router. Mounted at /api/settings.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	mount(r, "theme", h.theme, h.logger)
	mount(r, "hero", h.hero, h.logger)
	mount(r, "story", h.story, h.logger)
	mount(r, "vision", h.vision, h.logger)
	mount(r, "values", h.values, h.logger)
	mount(r, "services", h.services, h.logger)
	mount(r, "clients", h.clients, h.logger)
	mount(r, "contact-info", h.contact, h.logger)
	mount(r, "seo", h.seo, h.logger)

	return r
}
