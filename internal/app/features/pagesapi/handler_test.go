package pagesapi

import (
	"net/http"
	"testing"

	navstore "github.com/dimondcastle/cms/internal/app/store/nav"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dimondcastle/cms/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return Routes(NewHandler(db, zap.NewNop()))
}

func validInput(slug string) map[string]any {
	return map[string]any{
		"slug":   slug,
		"status": models.StatusPublished,
		"en":     map[string]any{"title": "About Us"},
		"ar":     map[string]any{"title": "من نحن"},
	}
}

func TestCreate(t *testing.T) {
	router := newTestRouter(t)

	t.Run("creates page", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", validInput("/about"))
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusCreated)

		var page models.Page
		rec.DecodeJSON(t, &page)
		if page.Slug != "/about" {
			t.Errorf("created slug = %q", page.Slug)
		}
		if page.ID.IsZero() {
			t.Error("created page has empty id")
		}
	})

	t.Run("status defaults to draft", func(t *testing.T) {
		body := validInput("/careers")
		delete(body, "status")
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", body)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusCreated)
		var page models.Page
		rec.DecodeJSON(t, &page)
		if page.Status != models.StatusDraft {
			t.Errorf("default status = %q, want draft", page.Status)
		}
	})

	t.Run("invalid slug returns field error", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", validInput("about"))
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusBadRequest)
		var resp struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		rec.DecodeJSON(t, &resp)
		if resp.Fields["slug"] == "" {
			t.Errorf("expected slug field error, got %+v", resp)
		}
	})

	t.Run("unknown block type rejected", func(t *testing.T) {
		body := validInput("/services")
		body["en"] = map[string]any{
			"title": "Services",
			"sections": []map[string]any{
				{
					"key": "hero",
					"blocks": []map[string]any{
						{"type": "hologram", "text": "x"},
					},
				},
			},
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", body)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/", validInput("/about"))
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		rec.AssertStatus(t, http.StatusConflict)
	})
}

func TestGet(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", validInput("/about"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	var created models.Page
	rec.DecodeJSON(t, &created)

	t.Run("by id", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"+created.ID.Hex()))
		rec.AssertStatus(t, http.StatusOK)
	})

	t.Run("by slug", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/by-slug?slug=/about"))
		rec.AssertStatus(t, http.StatusOK)

		var page models.Page
		rec.DecodeJSON(t, &page)
		if page.ID != created.ID {
			t.Error("by-slug returned a different page")
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/not-an-id"))
		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("missing page", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/65f000000000000000000000"))
		rec.AssertStatus(t, http.StatusNotFound)
	})
}

func TestReplaceAndPatch(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", validInput("/about"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	var created models.Page
	rec.DecodeJSON(t, &created)

	t.Run("replace overwrites", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPut, "/"+created.ID.Hex(), validInput("/about-us")))
		rec.AssertStatus(t, http.StatusOK)

		var page models.Page
		rec.DecodeJSON(t, &page)
		if page.Slug != "/about-us" {
			t.Errorf("replaced slug = %q", page.Slug)
		}
	})

	t.Run("patch updates only provided fields", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/"+created.ID.Hex(), map[string]any{
			"status": models.StatusDraft,
		}))
		rec.AssertStatus(t, http.StatusOK)

		var page models.Page
		rec.DecodeJSON(t, &page)
		if page.Status != models.StatusDraft {
			t.Errorf("patched status = %q", page.Status)
		}
		if page.Slug != "/about-us" {
			t.Errorf("patch clobbered slug: %q", page.Slug)
		}
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/"+created.ID.Hex(), map[string]any{}))
		rec.AssertStatus(t, http.StatusBadRequest)
	})
}

func TestDelete(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", validInput("/about"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	var created models.Page
	rec.DecodeJSON(t, &created)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, "/"+created.ID.Hex()))
	rec.AssertStatus(t, http.StatusNoContent)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, "/"+created.ID.Hex()))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDelete_NavReferenceLeftDangling(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := Routes(NewHandler(db, zap.NewNop()))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", validInput("/about")))
	rec.AssertStatus(t, http.StatusCreated)
	var created models.Page
	rec.DecodeJSON(t, &created)

	nav := navstore.New(db)
	if _, err := nav.ReplaceTree(ctx, []models.NavItem{
		{
			Label: models.LocalizedText{En: "About", Ar: "من نحن"},
			Kind:  models.NavInternal,
			Href:  created.Slug,
			Order: 0,
		},
	}); err != nil {
		t.Fatalf("ReplaceTree() error = %v", err)
	}

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodDelete, "/"+created.ID.Hex()))
	rec.AssertStatus(t, http.StatusNoContent)

	// Deleting a page does not cascade into the menu. The item stays and
	// its href points at a page that no longer exists.
	items, err := nav.GetTree(ctx)
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("nav items after delete = %d, want 1", len(items))
	}
	if items[0].Href != "/about" {
		t.Errorf("nav href = %q, want /about", items[0].Href)
	}
}

func TestCheckSlug(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/", validInput("/about"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	var created models.Page
	rec.DecodeJSON(t, &created)

	check := func(t *testing.T, target string) (string, bool) {
		t.Helper()
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, target))
		rec.AssertStatus(t, http.StatusOK)
		var resp struct {
			Slug      string `json:"slug"`
			Available bool   `json:"available"`
		}
		rec.DecodeJSON(t, &resp)
		return resp.Slug, resp.Available
	}

	t.Run("taken slug", func(t *testing.T) {
		if _, available := check(t, "/check-slug?slug=/about"); available {
			t.Error("taken slug reported available")
		}
	})

	t.Run("free slug", func(t *testing.T) {
		if _, available := check(t, "/check-slug?slug=/team"); !available {
			t.Error("free slug reported taken")
		}
	})

	t.Run("excluding owner frees its slug", func(t *testing.T) {
		if _, available := check(t, "/check-slug?slug=/about&exclude="+created.ID.Hex()); !available {
			t.Error("own slug reported taken when excluded")
		}
	})
}

func TestList(t *testing.T) {
	router := newTestRouter(t)

	for _, slug := range []string{"/about", "/services"} {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", validInput(slug)))
		rec.AssertStatus(t, http.StatusCreated)
	}

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/"))
	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Items []models.Page `json:"items"`
		Total int64         `json:"total"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.Total != 2 || len(resp.Items) != 2 {
		t.Errorf("list = %d items, total %d, want 2/2", len(resp.Items), resp.Total)
	}
}
