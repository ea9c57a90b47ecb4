// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits, timeouts); AppConfig is everything
// specific to the content service. The struct is passed to most
// lifecycle hooks, so any configuration needed during startup, request
// handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// API key authentication for the admin content API (/api/*).
	// Leave empty to disable API key authentication (dev only).
	APIKey string

	// CSRF protection for the public site's contact form.
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Cloudinary account serving images and videos referenced by
	// public IDs in content blocks.
	CloudinaryCloudName string

	// Additional hosts the media proxy may fetch from, beyond the
	// Cloudinary delivery host derived from CloudinaryCloudName.
	MediaProxyHosts []string

	// Contact form rate limiting (keyed by client IP).
	ContactRateAttempts int           // Max submissions inside the window before blocking (default: 5)
	ContactRateWindow   time.Duration // Window for counting submissions (default: 15m)
	ContactRateBlock    time.Duration // Block duration after exceeding the limit (default: 1h)
}
