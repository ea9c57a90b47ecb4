// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	blogapifeature "github.com/dimondcastle/cms/internal/app/features/blogapi"
	healthfeature "github.com/dimondcastle/cms/internal/app/features/health"
	mediaproxyfeature "github.com/dimondcastle/cms/internal/app/features/mediaproxy"
	messagesapifeature "github.com/dimondcastle/cms/internal/app/features/messagesapi"
	navapifeature "github.com/dimondcastle/cms/internal/app/features/navapi"
	pagesapifeature "github.com/dimondcastle/cms/internal/app/features/pagesapi"
	productsapifeature "github.com/dimondcastle/cms/internal/app/features/productsapi"
	sitefeature "github.com/dimondcastle/cms/internal/app/features/site"
	siteconfigfeature "github.com/dimondcastle/cms/internal/app/features/siteconfig"
	statsapifeature "github.com/dimondcastle/cms/internal/app/features/statsapi"
	"github.com/dimondcastle/cms/internal/app/store/ratelimit"
	"github.com/dimondcastle/cms/internal/app/system/apicors"
	"github.com/dimondcastle/cms/internal/app/system/auth"
	"github.com/dimondcastle/cms/internal/app/system/media"
	"github.com/dimondcastle/cms/internal/app/system/render"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// The route surface has three layers:
//   - /api/* is the admin content API: JSON, Bearer token auth,
//     permissive CORS, no CSRF.
//   - /api/contact is the one public API endpoint, protected by the
//     contact rate limiter instead of an API key.
//   - Everything else is the public site: server-rendered HTML with
//     CSRF on the contact form, English at / and Arabic under /ar.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Media URL resolver and block renderer for the public site.
	resolver := media.NewResolver(appCfg.CloudinaryCloudName)
	renderer := render.New(resolver)

	// Rate limiter for public contact form submissions, keyed by
	// client IP and backed by the rate_limits collection.
	limiter := ratelimit.New(
		deps.MongoDatabase,
		appCfg.ContactRateAttempts,
		appCfg.ContactRateWindow,
		appCfg.ContactRateBlock,
	)

	siteConfig := siteconfigfeature.NewHandler(deps.MongoDatabase, logger)
	messagesHandler := messagesapifeature.NewHandler(deps.MongoDatabase, limiter, logger)

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Health check endpoints for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Admin content API. All routes are JSON with permissive CORS;
	// the public contact endpoint skips the API key check.
	r.Route("/api", func(api chi.Router) {
		api.Use(apicors.Middleware())

		api.Group(func(pub chi.Router) {
			pub.Mount("/contact", messagesapifeature.PublicRoutes(messagesHandler))
		})

		api.Group(func(admin chi.Router) {
			admin.Use(auth.APIKeyAuth(appCfg.APIKey, logger))

			admin.Mount("/pages", pagesapifeature.Routes(pagesapifeature.NewHandler(deps.MongoDatabase, logger)))
			admin.Mount("/blogs", blogapifeature.Routes(blogapifeature.NewHandler(deps.MongoDatabase, logger)))
			admin.Mount("/products", productsapifeature.Routes(productsapifeature.NewHandler(deps.MongoDatabase, logger)))
			admin.Mount("/navigation", navapifeature.Routes(navapifeature.NewHandler(deps.MongoDatabase, logger)))
			admin.Mount("/messages", messagesapifeature.AdminRoutes(messagesHandler))
			admin.Mount("/settings", siteconfigfeature.Routes(siteConfig))
			admin.Mount("/stats", statsapifeature.Routes(statsapifeature.NewHandler(deps.MongoDatabase, logger)))
		})
	})

	// Media proxy for Cloudinary-hosted assets. The Cloudinary
	// delivery host is always allowed; extra hosts come from config.
	proxyHosts := append([]string{resolver.Host()}, appCfg.MediaProxyHosts...)
	mediaHandler := mediaproxyfeature.NewHandler(proxyHosts, logger)
	r.Mount("/media", mediaproxyfeature.Routes(mediaHandler))

	// Public site, mounted last so its catch-all handles 404s.
	siteHandler := sitefeature.NewHandler(deps.MongoDatabase, limiter, siteConfig, renderer, logger)
	r.Mount("/", sitefeature.Routes(siteHandler, []byte(appCfg.CSRFKey), secure))

	return r, nil
}
