package singleton

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dimondcastle/cms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestGet_LazilyCreatesDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, "theme_settings", models.DefaultTheme)

	theme, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if theme.Brand.Primary != "#0f3d5c" {
		t.Errorf("default primary = %q", theme.Brand.Primary)
	}
	if theme.Typography.ArabicFont != "Cairo" {
		t.Errorf("default arabic font = %q", theme.Typography.ArabicFont)
	}

	// Second read returns the stored document, not a fresh insert.
	count, err := db.Collection("theme_settings").CountDocuments(ctx, bson.M{"singleton": true})
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if count != 1 {
		t.Errorf("document count = %d, want 1", count)
	}
	if _, err := store.Get(ctx); err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
}

func TestMerge_TopLevelKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, "theme_settings", models.DefaultTheme)

	t.Run("merged key replaced, others untouched", func(t *testing.T) {
		updated, err := store.Merge(ctx, map[string]any{
			"brand": models.BrandColors{
				Primary:   "#222222",
				Secondary: "#333333",
				Accent:    "#444444",
				Surface:   "#ffffff",
				Text:      "#000000",
			},
		})
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		if updated.Brand.Primary != "#222222" {
			t.Errorf("merged primary = %q", updated.Brand.Primary)
		}
		// Typography was not part of the merge and keeps defaults.
		if updated.Typography.HeadingFont != "Playfair Display" {
			t.Errorf("typography changed by unrelated merge: %q", updated.Typography.HeadingFont)
		}
		if updated.Tokens.RadiusPx != 8 {
			t.Errorf("tokens changed by unrelated merge: %d", updated.Tokens.RadiusPx)
		}
	})

	t.Run("json key maps to bson key", func(t *testing.T) {
		updated, err := store.Merge(ctx, map[string]any{
			"designTokens": models.DesignTokens{RadiusPx: 2, SpacingPx: 24, Shadow: "none"},
		})
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		if updated.Tokens.RadiusPx != 2 || updated.Tokens.Shadow != "none" {
			t.Errorf("designTokens merge not applied: %+v", updated.Tokens)
		}
	})

	t.Run("unknown keys ignored", func(t *testing.T) {
		updated, err := store.Merge(ctx, map[string]any{"bogus": "value"})
		if err != nil {
			t.Fatalf("Merge() error = %v", err)
		}
		if updated.Brand.Primary != "#222222" {
			t.Errorf("unknown-key merge altered document: %q", updated.Brand.Primary)
		}
	})
}

func TestMerge_LastWriteWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, "hero_settings", models.DefaultHero)

	t.Run("each response reflects its own payload", func(t *testing.T) {
		first, err := store.Merge(ctx, map[string]any{"ctaHref": "/products"})
		if err != nil {
			t.Fatalf("first Merge() error = %v", err)
		}
		second, err := store.Merge(ctx, map[string]any{"ctaHref": "/blog"})
		if err != nil {
			t.Fatalf("second Merge() error = %v", err)
		}
		if first.CTAHref != "/products" {
			t.Errorf("first response ctaHref = %q, want /products", first.CTAHref)
		}
		if second.CTAHref != "/blog" {
			t.Errorf("second response ctaHref = %q, want /blog", second.CTAHref)
		}

		got, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.CTAHref != "/blog" {
			t.Errorf("stored ctaHref = %q, want the last write /blog", got.CTAHref)
		}
	})

	t.Run("concurrent writers", func(t *testing.T) {
		hrefs := []string{"/products", "/blog", "/contact", "/about"}
		errs := make(chan error, len(hrefs))

		var wg sync.WaitGroup
		for _, href := range hrefs {
			wg.Add(1)
			go func(href string) {
				defer wg.Done()
				updated, err := store.Merge(ctx, map[string]any{"ctaHref": href})
				if err != nil {
					errs <- err
					return
				}
				if updated.CTAHref != href {
					errs <- fmt.Errorf("merge response ctaHref = %q, want %q", updated.CTAHref, href)
				}
			}(href)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Error(err)
		}

		// Whichever write landed last is what readers see.
		got, err := store.Get(ctx)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		found := false
		for _, href := range hrefs {
			if got.CTAHref == href {
				found = true
			}
		}
		if !found {
			t.Errorf("stored ctaHref = %q, not one of the written values", got.CTAHref)
		}
	})
}

func TestReset_RestoresDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, "hero_settings", models.DefaultHero)

	if _, err := store.Merge(ctx, map[string]any{"ctaHref": "/products"}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	restored, err := store.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if restored.CTAHref != "/contact" {
		t.Errorf("reset ctaHref = %q, want /contact", restored.CTAHref)
	}

	// The reset value is what subsequent reads see.
	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.CTAHref != "/contact" {
		t.Errorf("post-reset Get ctaHref = %q", got.CTAHref)
	}
}

func TestReplace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db, "vision_settings", models.DefaultVision)

	want := models.VisionSettings{
		Title: models.LocalizedText{En: "Vision 2030", Ar: "رؤية 2030"},
		Body:  models.LocalizedText{En: "Regional leadership in trading."},
	}
	if _, err := store.Replace(ctx, want); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title.En != "Vision 2030" || got.Body.En != "Regional leadership in trading." {
		t.Errorf("replaced value = %+v", got)
	}
}
