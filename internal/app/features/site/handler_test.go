package site

import (
	"net/http"
	"testing"
	"time"

	"github.com/dimondcastle/cms/internal/app/features/siteconfig"
	"github.com/dimondcastle/cms/internal/app/store/ratelimit"
	"github.com/dimondcastle/cms/internal/app/system/media"
	"github.com/dimondcastle/cms/internal/app/system/render"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dimondcastle/cms/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *siteconfig.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := siteconfig.NewHandler(db, zap.NewNop())
	renderer := render.New(media.NewResolver("demo"))
	limiter := ratelimit.New(db, 5, time.Minute, time.Minute)
	return NewHandler(db, limiter, cfg, renderer, zap.NewNop()), cfg
}

func TestWithHeroSettings(t *testing.T) {
	h, cfg := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewRequest(http.MethodGet, "/").WithContext(ctx)

	t.Run("empty hero section filled from singleton", func(t *testing.T) {
		sections := h.withHeroSettings(req, []models.Section{{Key: models.SectionHero}})
		if len(sections) != 1 {
			t.Fatalf("sections = %d, want 1", len(sections))
		}
		if got := sections[0].En["heading"]; got != "Dimond Castle" {
			t.Errorf("en heading = %v", got)
		}
		if got := sections[0].Ar["heading"]; got != "دايموند كاسل" {
			t.Errorf("ar heading = %v", got)
		}
		if got := sections[0].En["ctaHref"]; got != "/contact" {
			t.Errorf("ctaHref = %v", got)
		}
	})

	t.Run("edits to the singleton flow through", func(t *testing.T) {
		if _, err := cfg.Hero().Merge(ctx, map[string]any{"ctaHref": "/products"}); err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		sections := h.withHeroSettings(req, []models.Section{{Key: models.SectionHero}})
		if got := sections[0].En["ctaHref"]; got != "/products" {
			t.Errorf("ctaHref = %v, want /products", got)
		}
	})

	t.Run("hero with its own content untouched", func(t *testing.T) {
		own := map[string]any{"heading": "Custom"}
		sections := h.withHeroSettings(req, []models.Section{{Key: models.SectionHero, En: own}})
		if got := sections[0].En["heading"]; got != "Custom" {
			t.Errorf("heading = %v, want Custom", got)
		}
		if sections[0].Ar != nil {
			t.Errorf("ar payload added to authored hero: %v", sections[0].Ar)
		}
	})

	t.Run("non-hero sections untouched", func(t *testing.T) {
		sections := h.withHeroSettings(req, []models.Section{{Key: models.SectionRichText}})
		if sections[0].En != nil || sections[0].Ar != nil {
			t.Errorf("non-hero section gained payload: %+v", sections[0])
		}
	})
}
