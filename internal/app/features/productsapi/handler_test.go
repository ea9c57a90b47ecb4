package productsapi

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

func productInput(slug string) map[string]any {
	return map[string]any{
		"slug":   slug,
		"status": models.StatusPublished,
		"en":     map[string]any{"name": "Granite Tiles", "summary": "Imported granite."},
		"ar":     map[string]any{"name": "بلاط جرانيت"},
	}
}

func TestCreate_Defaults(t *testing.T) {
	router := newTestRouter(t)

	t.Run("featured and stock defaults", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", productInput("granite-tiles")))
		rec.AssertStatus(t, http.StatusCreated)

		var p models.Product
		rec.DecodeJSON(t, &p)
		if p.Featured {
			t.Error("new product defaulted to featured")
		}
		if !p.InStock {
			t.Error("new product defaulted to out of stock")
		}
	})

	t.Run("explicit false inStock respected", func(t *testing.T) {
		body := productInput("marble-slabs")
		body["inStock"] = false
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
		rec.AssertStatus(t, http.StatusCreated)

		var p models.Product
		rec.DecodeJSON(t, &p)
		if p.InStock {
			t.Error("explicit inStock=false was overridden")
		}
	})

	t.Run("path-style slug rejected", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", productInput("/granite")))
		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", productInput("granite-tiles")))
		rec.AssertStatus(t, http.StatusConflict)
	})
}

func TestList_Filters(t *testing.T) {
	router := newTestRouter(t)

	seed := []map[string]any{
		productInput("granite-tiles"),
		productInput("marble-slabs"),
		productInput("cement-bags"),
	}
	seed[0]["featured"] = true
	seed[1]["inStock"] = false
	seed[2]["status"] = models.StatusDraft
	for _, body := range seed {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
		rec.AssertStatus(t, http.StatusCreated)
	}

	list := func(t *testing.T, target string) (items []models.Product, total int64) {
		t.Helper()
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, target))
		rec.AssertStatus(t, http.StatusOK)
		var resp struct {
			Items []models.Product `json:"items"`
			Total int64            `json:"total"`
		}
		rec.DecodeJSON(t, &resp)
		return resp.Items, resp.Total
	}

	t.Run("all", func(t *testing.T) {
		_, total := list(t, "/")
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
	})

	t.Run("featured only", func(t *testing.T) {
		items, total := list(t, "/?featured=true")
		if total != 1 || len(items) != 1 || items[0].Slug != "granite-tiles" {
			t.Errorf("featured filter: total %d items %+v", total, items)
		}
	})

	t.Run("out of stock only", func(t *testing.T) {
		items, _ := list(t, "/?inStock=false")
		if len(items) != 1 || items[0].Slug != "marble-slabs" {
			t.Errorf("inStock filter: %+v", items)
		}
	})

	t.Run("published only", func(t *testing.T) {
		_, total := list(t, "/?status=published")
		if total != 2 {
			t.Errorf("published total = %d, want 2", total)
		}
	})
}

func TestGetBySlug(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", productInput("granite-tiles")))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/by-slug?slug=granite-tiles"))
	rec.AssertStatus(t, http.StatusOK)

	var p models.Product
	rec.DecodeJSON(t, &p)
	if p.En.Name != "Granite Tiles" {
		t.Errorf("by-slug name = %q", p.En.Name)
	}
}
