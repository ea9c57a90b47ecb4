// Package productsapi provides the admin JSON API for the product catalog.
//
// New products default to draft, not featured, and in stock unless the
// payload says otherwise.
package productsapi

import (
	"net/http"
	"strconv"

	productstore "github.com/dimondcastle/cms/internal/app/store/products"
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

// Handler handles product API requests.
type Handler struct {
	store  *productstore.Store
	logger *zap.Logger
}

// NewHandler creates a new products API handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store:  productstore.New(db),
		logger: logger,
	}
}

// Input is the create/replace payload for a product. Featured and InStock
// are pointers so "omitted" and "false" stay distinguishable.
type Input struct {
	Slug           string               `json:"slug" validate:"required,slug" label:"Slug"`
	Status         string               `json:"status" validate:"required,status" label:"Status"`
	Featured       *bool                `json:"featured"`
	InStock        *bool                `json:"inStock"`
	ImagePublicIDs []string             `json:"imagePublicIds"`
	En             models.ProductLocale `json:"en"`
	Ar             models.ProductLocale `json:"ar"`
}

func (in *Input) validate() map[string]string {
	fields := inputval.Validate(in).Fields()
	if fields == nil {
		fields = map[string]string{}
	}
	inputval.MergeFields(fields, inputval.ProductContentFields("en", in.En))
	inputval.MergeFields(fields, inputval.ProductContentFields("ar", in.Ar))
	return fields
}

// toModel applies the catalog defaults: draft, not featured, in stock.
func (in *Input) toModel() models.Product {
	p := models.Product{
		Slug:           in.Slug,
		Status:         in.Status,
		Featured:       false,
		InStock:        true,
		ImagePublicIDs: in.ImagePublicIDs,
		En:             in.En,
		Ar:             in.Ar,
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	return p
}

// List handles GET / with optional status, q, featured, inStock, page,
// limit query params.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := productstore.ListFilter{
		Status:   normalize.Status(r.URL.Query().Get("status")),
		Search:   normalize.Search(r.URL.Query().Get("q")),
		Featured: queryBool(r, "featured"),
		InStock:  queryBool(r, "inStock"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	items, total, err := h.store.List(r.Context(), f)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		jsonutil.InternalError(w, "failed to list products")
		return
	}
	if items == nil {
		items = []models.Product{}
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

	p, err := h.store.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to get product")
		return
	}
	jsonutil.OK(w, p)
}

// GetBySlug handles GET /by-slug?slug=steel-doors.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(r.URL.Query().Get("slug"))
	if !slugs.IsValid(slug) {
		jsonutil.BadRequest(w, "invalid slug")
		return
	}

	p, err := h.store.GetBySlug(r.Context(), slug)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get product by slug", zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to get product")
		return
	}
	jsonutil.OK(w, p)
}

// Create handles POST /.
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

	p, err := h.store.Create(r.Context(), in.toModel())
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to create product", zap.String("slug", in.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to create product")
		return
	}

	h.logger.Info("product created", zap.String("slug", p.Slug), zap.String("id", p.ID.Hex()))
	jsonutil.Created(w, p)
}

// Replace handles PUT /{id}.
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

	p, err := h.store.Replace(r.Context(), id, in.toModel())
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to replace product", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update product")
		return
	}
	jsonutil.OK(w, p)
}

// PatchInput carries the optional top-level fields for a partial update.
type PatchInput struct {
	Slug           *string               `json:"slug"`
	Status         *string               `json:"status"`
	Featured       *bool                 `json:"featured"`
	InStock        *bool                 `json:"inStock"`
	ImagePublicIDs *[]string             `json:"imagePublicIds"`
	En             *models.ProductLocale `json:"en"`
	Ar             *models.ProductLocale `json:"ar"`
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
	if in.Featured != nil {
		set["featured"] = *in.Featured
	}
	if in.InStock != nil {
		set["in_stock"] = *in.InStock
	}
	if in.ImagePublicIDs != nil {
		set["image_public_ids"] = *in.ImagePublicIDs
	}
	if in.En != nil {
		inputval.MergeFields(fields, inputval.ProductContentFields("en", *in.En))
		set["en"] = *in.En
	}
	if in.Ar != nil {
		inputval.MergeFields(fields, inputval.ProductContentFields("ar", *in.Ar))
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

	p, err := h.store.Patch(r.Context(), id, set)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			jsonutil.Conflict(w, "slug already exists")
			return
		}
		h.logger.Error("failed to patch product", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update product")
		return
	}
	jsonutil.OK(w, p)
}

// Delete handles DELETE /{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.store.Delete(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete product", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete product")
		return
	}

	h.logger.Info("product deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}

// CheckSlug handles GET /check-slug?slug=steel-doors&exclude=<id>.
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

// queryBool parses a tri-state bool query param; nil means "not set".
func queryBool(r *http.Request, name string) *bool {
	switch r.URL.Query().Get(name) {
	case "true", "1":
		t := true
		return &t
	case "false", "0":
		f := false
		return &f
	default:
		return nil
	}
}
