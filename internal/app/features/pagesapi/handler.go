// Package pagesapi provides the admin JSON API for site pages.
//
// Pages use path-style slugs ("/", "/about", "/services/transport") and
// carry the full bilingual section tree for each locale.
package pagesapi

import (
	"net/http"

	pagestore "github.com/dimondcastle/cms/internal/app/store/pages"
	"github.com/dimondcastle/cms/internal/app/system/inputval"
	"github.com/dimondcastle/cms/internal/app/system/jsonutil"
	"github.com/dimondcastle/cms/internal/app/system/normalize"
	"github.com/dimondcastle/cms/internal/app/system/slugs"
	"github.com/dimondcastle/cms/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles page API requests.
type Handler struct {
	store  *pagestore.Store
	logger *zap.Logger
}

// NewHandler creates a new pages API handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store:  pagestore.New(db),
		logger: logger,
	}
}

// Input is the create/replace payload for a page.
type Input struct {
	Slug   string               `json:"slug" validate:"required,pagepath" label:"Slug"`
	Status string               `json:"status" validate:"required,status" label:"Status"`
	En     models.LocaleContent `json:"en"`
	Ar     models.LocaleContent `json:"ar"`
}

// validate returns field errors for the full payload.
func (in *Input) validate() map[string]string {
	fields := inputval.Validate(in).Fields()
	if fields == nil {
		fields = map[string]string{}
	}
	inputval.MergeFields(fields, inputval.ContentFields("en", in.En))
	inputval.MergeFields(fields, inputval.ContentFields("ar", in.Ar))
	return fields
}

// List handles GET / with optional status, q, page, limit query params.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := pagestore.ListFilter{
		Status: normalize.Status(r.URL.Query().Get("status")),
		Search: normalize.Search(r.URL.Query().Get("q")),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	items, total, err := h.store.List(r.Context(), f)
	if err != nil {
		h.logger.Error("failed to list pages", zap.Error(err))
		jsonutil.InternalError(w, "failed to list pages")
		return
	}
	if items == nil {
		items = []models.Page{}
	}

	jsonutil.OK(w, map[string]any{
		"items": items,
		"total": total,
	})
}

// Get handles GET /{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	page, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "page not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get page", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to get page")
		return
	}
	jsonutil.OK(w, page)
}

// GetBySlug handles GET /by-slug?slug=/about.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if !slugs.IsValidPagePath(slug) {
		jsonutil.BadRequest(w, "invalid slug")
		return
	}

	page, err := h.store.GetBySlug(r.Context(), slug)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "page not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get page by slug", zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to get page")
		return
	}
	jsonutil.OK(w, page)
}

// Create handles POST /. Status defaults to draft when omitted.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	in.Slug = slugs.Normalize(in.Slug)
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if fields := in.validate(); len(fields) > 0 {
		jsonutil.ValidationError(w, fields)
		return
	}

	page, err := h.store.Create(r.Context(), models.Page{
		Slug:   in.Slug,
		Status: in.Status,
		En:     in.En,
		Ar:     in.Ar,
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to create page", zap.String("slug", in.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to create page")
		return
	}

	h.logger.Info("page created", zap.String("slug", page.Slug), zap.String("id", page.ID.Hex()))
	jsonutil.Created(w, page)
}

// Replace handles PUT /{id}: a full overwrite of the document.
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in Input
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	in.Slug = slugs.Normalize(in.Slug)
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if fields := in.validate(); len(fields) > 0 {
		jsonutil.ValidationError(w, fields)
		return
	}

	page, err := h.store.Replace(r.Context(), id, models.Page{
		Slug:   in.Slug,
		Status: in.Status,
		En:     in.En,
		Ar:     in.Ar,
	})
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "page not found")
		return
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to replace page", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update page")
		return
	}
	jsonutil.OK(w, page)
}

// PatchInput carries the optional top-level fields for a partial update.
type PatchInput struct {
	Slug   *string               `json:"slug"`
	Status *string               `json:"status"`
	En     *models.LocaleContent `json:"en"`
	Ar     *models.LocaleContent `json:"ar"`
}

// Patch handles PATCH /{id}: only the provided top-level fields change.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in PatchInput
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	fields := map[string]string{}
	set := bson.M{}
	if in.Slug != nil {
		s := slugs.Normalize(*in.Slug)
		if !slugs.IsValidPagePath(s) {
			fields["slug"] = "Slug must start with / followed by lowercase-kebab segments."
		}
		set["slug"] = s
	}
	if in.Status != nil {
		if !models.IsValidStatus(*in.Status) {
			fields["status"] = "Status must be draft or published."
		}
		set["status"] = *in.Status
	}
	if in.En != nil {
		inputval.MergeFields(fields, inputval.ContentFields("en", *in.En))
		set["en"] = *in.En
	}
	if in.Ar != nil {
		inputval.MergeFields(fields, inputval.ContentFields("ar", *in.Ar))
		set["ar"] = *in.Ar
	}
	if len(fields) > 0 {
		jsonutil.ValidationError(w, fields)
		return
	}
	if len(set) == 0 {
		jsonutil.BadRequest(w, "no fields to update")
		return
	}

	page, err := h.store.Patch(r.Context(), id, set)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "page not found")
		return
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to patch page", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update page")
		return
	}
	jsonutil.OK(w, page)
}

// Delete handles DELETE /{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.store.Delete(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "page not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete page", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete page")
		return
	}

	h.logger.Info("page deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}

// CheckSlug handles GET /check-slug?slug=/about&exclude=<id>. It reports
// availability; the unique index remains the true gate.
func (h *Handler) CheckSlug(w http.ResponseWriter, r *http.Request) {
	slug := slugs.Normalize(r.URL.Query().Get("slug"))
	if !slugs.IsValidPagePath(slug) {
		jsonutil.BadRequest(w, "invalid slug")
		return
	}

	var exclude primitive.ObjectID
	if ex := r.URL.Query().Get("exclude"); ex != "" {
		var err error
		exclude, err = primitive.ObjectIDFromHex(ex)
		if err != nil {
			jsonutil.BadRequest(w, "invalid exclude id")
			return
		}
	}

	taken, err := h.store.SlugExists(r.Context(), slug, exclude)
	if err != nil {
		h.logger.Error("failed to check slug", zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to check slug")
		return
	}
	jsonutil.OK(w, map[string]any{"slug": slug, "available": !taken})
}

// pathID parses the {id} path param, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// queryInt parses a positive int query param; 0 means "not set".
func queryInt(r *http.Request, name string) int64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	var n int64
	for _, c := range v {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int64(c-'0')
		if n > 1_000_000 {
			return 0
		}
	}
	return n
}
