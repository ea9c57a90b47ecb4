package pagestore

import (
	"testing"

	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dimondcastle/cms/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func testPage(slug, status, title string) models.Page {
	return models.Page{
		Slug:   slug,
		Status: status,
		En:     models.LocaleContent{Title: title},
		Ar:     models.LocaleContent{Title: "عنوان"},
	}
}

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	created, err := store.Create(ctx, testPage("/about", models.StatusDraft, "About"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID.IsZero() {
		t.Error("created page has zero id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("created page missing timestamps")
	}

	byID, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Slug != "/about" {
		t.Errorf("GetByID slug = %q", byID.Slug)
	}

	bySlug, err := store.GetBySlug(ctx, "/about")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if bySlug.ID != created.ID {
		t.Errorf("GetBySlug returned different document")
	}
}

func TestCreate_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, err := store.Create(ctx, testPage("/about", models.StatusDraft, "About")); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	_, err := store.Create(ctx, testPage("/about", models.StatusDraft, "About again"))
	if !mongo.IsDuplicateKeyError(err) {
		t.Errorf("duplicate Create() error = %v, want duplicate key error", err)
	}
}

func TestGetPublishedBySlug_ExcludesDrafts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	if _, err := store.Create(ctx, testPage("/draft", models.StatusDraft, "Draft")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(ctx, testPage("/live", models.StatusPublished, "Live")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := store.GetPublishedBySlug(ctx, "/draft"); err != mongo.ErrNoDocuments {
		t.Errorf("GetPublishedBySlug(draft) error = %v, want ErrNoDocuments", err)
	}
	page, err := store.GetPublishedBySlug(ctx, "/live")
	if err != nil {
		t.Fatalf("GetPublishedBySlug(live) error = %v", err)
	}
	if page.En.Title != "Live" {
		t.Errorf("published title = %q", page.En.Title)
	}
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	seed := []models.Page{
		testPage("/about", models.StatusPublished, "About Us"),
		testPage("/services", models.StatusPublished, "Services"),
		testPage("/careers", models.StatusDraft, "Careers"),
	}
	for _, p := range seed {
		if _, err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create(%s) error = %v", p.Slug, err)
		}
	}

	t.Run("no filter returns all", func(t *testing.T) {
		pages, total, err := store.List(ctx, ListFilter{})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if total != 3 || len(pages) != 3 {
			t.Errorf("List() = %d pages, total %d, want 3/3", len(pages), total)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		_, total, err := store.List(ctx, ListFilter{Status: models.StatusDraft})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if total != 1 {
			t.Errorf("draft total = %d, want 1", total)
		}
	})

	t.Run("search matches title", func(t *testing.T) {
		pages, _, err := store.List(ctx, ListFilter{Search: "about"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(pages) != 1 || pages[0].Slug != "/about" {
			t.Errorf("search results = %+v", pages)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		pages, total, err := store.List(ctx, ListFilter{Limit: 2, Page: 2})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if total != 3 {
			t.Errorf("paginated total = %d, want 3", total)
		}
		if len(pages) != 1 {
			t.Errorf("page 2 with limit 2 = %d pages, want 1", len(pages))
		}
	})
}

func TestReplaceAndPatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	created, err := store.Create(ctx, testPage("/about", models.StatusDraft, "About"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	replaced, err := store.Replace(ctx, created.ID, testPage("/about-us", models.StatusPublished, "About Us"))
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if replaced.Slug != "/about-us" || replaced.Status != models.StatusPublished {
		t.Errorf("replaced page = %+v", replaced)
	}
	if !replaced.UpdatedAt.After(created.UpdatedAt) {
		t.Error("Replace did not advance updated_at")
	}

	patched, err := store.Patch(ctx, created.ID, bson.M{"status": models.StatusDraft})
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if patched.Status != models.StatusDraft {
		t.Errorf("patched status = %q", patched.Status)
	}
	if patched.Slug != "/about-us" {
		t.Errorf("patch clobbered slug: %q", patched.Slug)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	created, err := store.Create(ctx, testPage("/about", models.StatusDraft, "About"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("second Delete() error = %v, want ErrNoDocuments", err)
	}
}

func TestSlugExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)

	created, err := store.Create(ctx, testPage("/about", models.StatusDraft, "About"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	exists, err := store.SlugExists(ctx, "/about", primitive.NilObjectID)
	if err != nil {
		t.Fatalf("SlugExists() error = %v", err)
	}
	if !exists {
		t.Error("SlugExists(/about) = false, want true")
	}

	// Excluding the owning document makes its own slug available.
	exists, err = store.SlugExists(ctx, "/about", created.ID)
	if err != nil {
		t.Fatalf("SlugExists() error = %v", err)
	}
	if exists {
		t.Error("SlugExists excluding owner = true, want false")
	}

	exists, err = store.SlugExists(ctx, "/missing", primitive.NilObjectID)
	if err != nil {
		t.Fatalf("SlugExists() error = %v", err)
	}
	if exists {
		t.Error("SlugExists(/missing) = true, want false")
	}
}
