// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
// Environment variables take the form DIMONDCMS_MONGO_URI and so on.
const EnvVarPrefix = "DIMONDCMS"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, api_key, etc.
//   - Environment variables: DIMONDCMS_MONGO_URI, DIMONDCMS_API_KEY, etc.
//   - Command-line flags: --mongo_uri, --api_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "dimondcms", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// API key for the admin content API (Bearer token auth on /api/*)
	{Name: "api_key", Default: "", Desc: "API key for the admin content API (leave empty to disable auth)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Cloudinary media delivery
	{Name: "cloudinary_cloud_name", Default: "", Desc: "Cloudinary cloud name for media URLs"},
	{Name: "media_proxy_hosts", Default: "", Desc: "Extra allowed media proxy hosts (comma-separated)"},

	// Contact form rate limiting
	{Name: "contact_rate_attempts", Default: 5, Desc: "Max contact submissions per IP inside the window"},
	{Name: "contact_rate_window", Default: "15m", Desc: "Window for counting contact submissions"},
	{Name: "contact_rate_block", Default: "1h", Desc: "Block duration after exceeding the contact limit"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, DIMONDCMS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		APIKey:  appValues.String("api_key"),
		CSRFKey: appValues.String("csrf_key"),

		CloudinaryCloudName: appValues.String("cloudinary_cloud_name"),
		MediaProxyHosts:     splitHosts(appValues.String("media_proxy_hosts")),

		ContactRateAttempts: appValues.Int("contact_rate_attempts"),
		ContactRateWindow:   appValues.Duration("contact_rate_window", 15*time.Minute),
		ContactRateBlock:    appValues.Duration("contact_rate_block", time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.APIKey == "" {
			return fmt.Errorf("api_key must be set in production")
		}
		if len(appCfg.CSRFKey) < 32 || strings.HasPrefix(appCfg.CSRFKey, "dev-only") {
			return fmt.Errorf("csrf_key must be a strong 32+ character key in production")
		}
	}
	if appCfg.APIKey == "" {
		logger.Warn("api_key is empty; admin content API is unauthenticated")
	}

	if appCfg.ContactRateAttempts < 1 {
		return fmt.Errorf("contact_rate_attempts must be at least 1")
	}

	return nil
}

// splitHosts parses a comma-separated host list, dropping blanks.
func splitHosts(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var hosts []string
	for _, part := range strings.Split(s, ",") {
		if h := strings.TrimSpace(part); h != "" {
			hosts = append(hosts, strings.ToLower(h))
		}
	}
	return hosts
}
