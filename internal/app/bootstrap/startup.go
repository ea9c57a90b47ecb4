// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	blogstore "github.com/dimondcastle/cms/internal/app/store/blogs"
	pagestore "github.com/dimondcastle/cms/internal/app/store/pages"
	productstore "github.com/dimondcastle/cms/internal/app/store/products"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are
// complete, but before the HTTP handler is built and requests are
// served.
//
// Returning a non-nil error will abort startup and prevent the server
// from starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	// Log a content inventory so operators can confirm at a glance
	// that the service is pointed at the expected database.
	pages, err := pagestore.New(db).Count(ctx, "")
	if err != nil {
		return err
	}
	blogs, err := blogstore.New(db).Count(ctx, "")
	if err != nil {
		return err
	}
	products, err := productstore.New(db).Count(ctx, "")
	if err != nil {
		return err
	}
	logger.Info("content inventory",
		zap.Int64("pages", pages),
		zap.Int64("blogs", blogs),
		zap.Int64("products", products),
	)

	if appCfg.CloudinaryCloudName == "" {
		logger.Warn("cloudinary_cloud_name is empty; media blocks will fall back to raw URLs")
	}

	return nil
}
