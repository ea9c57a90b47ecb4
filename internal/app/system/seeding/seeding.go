// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	navstore "github.com/dimondcastle/cms/internal/app/store/nav"
	pagestore "github.com/dimondcastle/cms/internal/app/store/pages"
	"github.com/dimondcastle/cms/internal/app/store/singleton"
	"github.com/dimondcastle/cms/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := seedSettings(ctx, db, logger); err != nil {
		return err
	}
	if err := seedHomePage(ctx, db, logger); err != nil {
		return err
	}
	if err := seedNavigation(ctx, db, logger); err != nil {
		return err
	}
	return nil
}

// seedSettings materializes every settings singleton from its defaults. The
// stores also lazy-create on first read; seeding at boot just means the
// first admin GET never races a public-site read on an empty collection.
func seedSettings(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	seeds := []struct {
		name string
		get  func() error
	}{
		{"theme", func() error {
			_, err := singleton.New(db, "theme_settings", models.DefaultTheme).Get(ctx)
			return err
		}},
		{"hero", func() error {
			_, err := singleton.New(db, "hero_settings", models.DefaultHero).Get(ctx)
			return err
		}},
		{"story", func() error {
			_, err := singleton.New(db, "story_settings", models.DefaultStory).Get(ctx)
			return err
		}},
		{"vision", func() error {
			_, err := singleton.New(db, "vision_settings", models.DefaultVision).Get(ctx)
			return err
		}},
		{"values", func() error {
			_, err := singleton.New(db, "values_settings", models.DefaultValues).Get(ctx)
			return err
		}},
		{"services", func() error {
			_, err := singleton.New(db, "services_settings", models.DefaultServices).Get(ctx)
			return err
		}},
		{"clients", func() error {
			_, err := singleton.New(db, "clients_settings", models.DefaultClients).Get(ctx)
			return err
		}},
		{"contact-info", func() error {
			_, err := singleton.New(db, "contact_info", models.DefaultContactInfo).Get(ctx)
			return err
		}},
		{"seo", func() error {
			_, err := singleton.New(db, "site_seo", models.DefaultSiteSEO).Get(ctx)
			return err
		}},
	}

	for _, s := range seeds {
		if err := s.get(); err != nil {
			logger.Error("failed to seed settings", zap.String("resource", s.name), zap.Error(err))
			return err
		}
	}
	logger.Info("settings singletons seeded")
	return nil
}

// seedHomePage creates the published home page if it doesn't exist, so a
// fresh deployment serves something at "/" before any admin edit.
func seedHomePage(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := pagestore.New(db)

	if _, err := store.GetBySlug(ctx, models.HomeSlug); err == nil {
		return nil
	} else if err != mongo.ErrNoDocuments {
		logger.Error("failed to check home page", zap.Error(err))
		return err
	}

	// The hero section is left empty so the public site fills it from the
	// hero settings singleton.
	home := models.Page{
		Slug:   models.HomeSlug,
		Status: models.StatusPublished,
		En: models.LocaleContent{
			Title: "Dimond Castle",
			Sections: []models.Section{
				{Key: models.SectionHero},
				{
					Key: models.SectionRichText,
					Blocks: []models.Block{
						{Type: models.BlockParagraph, Text: "Welcome to our site. This page can be customized by an administrator."},
					},
				},
			},
		},
		Ar: models.LocaleContent{
			Title: "دايموند كاسل",
			Sections: []models.Section{
				{Key: models.SectionHero},
				{
					Key: models.SectionRichText,
					Blocks: []models.Block{
						{Type: models.BlockParagraph, Text: "مرحباً بكم في موقعنا. يمكن للمسؤول تخصيص هذه الصفحة."},
					},
				},
			},
		},
	}

	if err := store.Upsert(ctx, home); err != nil {
		logger.Error("failed to seed home page", zap.Error(err))
		return err
	}
	logger.Info("seeded home page")
	return nil
}

// seedNavigation creates a minimal default menu when none exists.
func seedNavigation(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := navstore.New(db)

	items, err := store.GetTree(ctx)
	if err != nil {
		logger.Error("failed to check navigation", zap.Error(err))
		return err
	}
	if len(items) > 0 {
		return nil
	}

	defaults := []models.NavItem{
		{
			Label: models.LocalizedText{En: "Home", Ar: "الرئيسية"},
			Kind:  models.NavInternal,
			Href:  models.HomeSlug,
			Order: 0,
		},
	}

	if _, err := store.ReplaceTree(ctx, defaults); err != nil {
		logger.Error("failed to seed navigation", zap.Error(err))
		return err
	}
	logger.Info("seeded navigation")
	return nil
}
