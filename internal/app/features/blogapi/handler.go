// Package blogapi provides the admin JSON API for blog posts.
package blogapi

import (
	"net/http"
	"strconv"

	blogstore "github.com/dimondcastle/cms/internal/app/store/blogs"
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

// Handler handles blog API requests.
type Handler struct {
	store  *blogstore.Store
	logger *zap.Logger
}

// NewHandler creates a new blog API handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store:  blogstore.New(db),
		logger: logger,
	}
}

// Input is the create/replace payload for a blog post.
type Input struct {
	Slug          string               `json:"slug" validate:"required,slug" label:"Slug"`
	Status        string               `json:"status" validate:"required,status" label:"Status"`
	CoverPublicID string               `json:"coverPublicId"`
	En            models.LocaleContent `json:"en"`
	Ar            models.LocaleContent `json:"ar"`
}

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
	f := blogstore.ListFilter{
		Status: normalize.Status(r.URL.Query().Get("status")),
		Search: normalize.Search(r.URL.Query().Get("q")),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	items, total, err := h.store.List(r.Context(), f)
	if err != nil {
		h.logger.Error("failed to list blog posts", zap.Error(err))
		jsonutil.InternalError(w, "failed to list blog posts")
		return
	}
	if items == nil {
		items = []models.Blog{}
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

	post, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "blog post not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get blog post", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to get blog post")
		return
	}
	jsonutil.OK(w, post)
}

// GetBySlug handles GET /by-slug?slug=my-post.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(r.URL.Query().Get("slug"))
	if !slugs.IsValid(slug) {
		jsonutil.BadRequest(w, "invalid slug")
		return
	}

	post, err := h.store.GetBySlug(r.Context(), slug)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "blog post not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get blog post by slug", zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to get blog post")
		return
	}
	jsonutil.OK(w, post)
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

	post, err := h.store.Create(r.Context(), models.Blog{
		Slug:          in.Slug,
		Status:        in.Status,
		CoverPublicID: in.CoverPublicID,
		En:            in.En,
		Ar:            in.Ar,
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to create blog post", zap.String("slug", in.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to create blog post")
		return
	}

	h.logger.Info("blog post created", zap.String("slug", post.Slug), zap.String("id", post.ID.Hex()))
	jsonutil.Created(w, post)
}

// Replace handles PUT /{id}: a full overwrite of the document. The view
// counter survives a replace.
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

	post, err := h.store.Replace(r.Context(), id, models.Blog{
		Slug:          in.Slug,
		Status:        in.Status,
		CoverPublicID: in.CoverPublicID,
		En:            in.En,
		Ar:            in.Ar,
	})
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "blog post not found")
		return
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to replace blog post", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update blog post")
		return
	}
	jsonutil.OK(w, post)
}

// PatchInput carries the optional top-level fields for a partial update.
type PatchInput struct {
	Slug          *string               `json:"slug"`
	Status        *string               `json:"status"`
	CoverPublicID *string               `json:"coverPublicId"`
	En            *models.LocaleContent `json:"en"`
	Ar            *models.LocaleContent `json:"ar"`
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
		if !slugs.IsValid(s) {
			fields["slug"] = "Slug must be lowercase letters, digits, and hyphens."
		}
		set["slug"] = s
	}
	if in.Status != nil {
		if !models.IsValidStatus(*in.Status) {
			fields["status"] = "Status must be draft or published."
		}
		set["status"] = *in.Status
	}
	if in.CoverPublicID != nil {
		set["cover_public_id"] = *in.CoverPublicID
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

	post, err := h.store.Patch(r.Context(), id, set)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "blog post not found")
		return
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to patch blog post", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update blog post")
		return
	}
	jsonutil.OK(w, post)
}

// Delete handles DELETE /{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.store.Delete(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "blog post not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete blog post", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete blog post")
		return
	}

	h.logger.Info("blog post deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}

// CheckSlug handles GET /check-slug?slug=my-post&exclude=<id>.
func (h *Handler) CheckSlug(w http.ResponseWriter, r *http.Request) {
	slug := slugs.Normalize(r.URL.Query().Get("slug"))
	if !slugs.IsValid(slug) {
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

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
