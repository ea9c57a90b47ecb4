package siteconfig

import (
	"net/http"
	"testing"

	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dimondcastle/cms/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return Routes(NewHandler(db, zap.NewNop()))
}

func TestGet_DefaultsOnFreshDatabase(t *testing.T) {
	router := newTestRouter(t)

	t.Run("theme", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/theme"))
		rec.AssertStatus(t, http.StatusOK)

		var theme models.ThemeSettings
		rec.DecodeJSON(t, &theme)
		if theme.Brand.Primary == "" || theme.Typography.ArabicFont == "" {
			t.Errorf("fresh theme is sparse: %+v", theme)
		}
	})

	t.Run("hero", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/hero"))
		rec.AssertStatus(t, http.StatusOK)

		var hero models.HeroSettings
		rec.DecodeJSON(t, &hero)
		if hero.Heading.En == "" || hero.Heading.Ar == "" {
			t.Errorf("fresh hero missing bilingual heading: %+v", hero)
		}
	})

	t.Run("seo", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/seo"))
		rec.AssertStatus(t, http.StatusOK)
	})
}

func TestPatch_MergesTopLevelKeys(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/theme", map[string]any{
		"brand": map[string]any{
			"primary":   "#101010",
			"secondary": "#202020",
			"accent":    "#303030",
			"surface":   "#fafafa",
			"text":      "#000000",
		},
	}))
	rec.AssertStatus(t, http.StatusOK)

	var theme models.ThemeSettings
	rec.DecodeJSON(t, &theme)
	if theme.Brand.Primary != "#101010" {
		t.Errorf("patched primary = %q", theme.Brand.Primary)
	}
	if theme.Typography.BodyFont != "Inter" {
		t.Errorf("typography lost in brand-only patch: %q", theme.Typography.BodyFont)
	}
}

func TestReset(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/contact-info", map[string]any{
		"email": "sales@dimondcastle.example",
	}))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/contact-info/reset", nil))
	rec.AssertStatus(t, http.StatusOK)

	var contact models.ContactInfo
	rec.DecodeJSON(t, &contact)
	if contact.Email != "info@example.com" {
		t.Errorf("reset email = %q, want default", contact.Email)
	}
}

func TestServicesItems(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPut, "/services", map[string]any{
		"items": []map[string]any{
			{
				"icon":        "truck",
				"name":        map[string]string{"en": "Transport", "ar": "النقل"},
				"description": map[string]string{"en": "Nationwide fleet."},
			},
		},
	}))
	rec.AssertStatus(t, http.StatusOK)

	var services models.ServicesSettings
	rec.DecodeJSON(t, &services)
	if len(services.Items) != 1 || services.Items[0].Name.En != "Transport" {
		t.Errorf("services items = %+v", services.Items)
	}
	if services.Title.En == "" {
		t.Error("title lost in items-only update")
	}
}
