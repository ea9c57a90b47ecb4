// Package statsapi reports content counts for the admin dashboard.
//
// A failing count degrades to zero rather than failing the whole response;
// the dashboard prefers stale numbers over an error page.
package statsapi

import (
	"net/http"

	blogstore "github.com/dimondcastle/cms/internal/app/store/blogs"
	messagestore "github.com/dimondcastle/cms/internal/app/store/messages"
	pagestore "github.com/dimondcastle/cms/internal/app/store/pages"
	productstore "github.com/dimondcastle/cms/internal/app/store/products"
	"github.com/dimondcastle/cms/internal/app/system/jsonutil"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler handles stats API requests.
type Handler struct {
	blogs    *blogstore.Store
	pages    *pagestore.Store
	products *productstore.Store
	messages *messagestore.Store
	logger   *zap.Logger
}

// NewHandler creates a new stats handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		blogs:    blogstore.New(db),
		pages:    pagestore.New(db),
		products: productstore.New(db),
		messages: messagestore.New(db),
		logger:   logger,
	}
}

// Counts is the stats response shape.
type Counts struct {
	Blogs          int64 `json:"blogs"`
	BlogsPublished int64 `json:"blogsPublished"`
	Pages          int64 `json:"pages"`
	Products       int64 `json:"products"`
	Messages       int64 `json:"messages"`
	MessagesUnseen int64 `json:"messagesUnseen"`
}

// Get handles GET /: aggregate content counts.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var c Counts

	count := func(name string, fn func() (int64, error)) int64 {
		n, err := fn()
		if err != nil {
			h.logger.Warn("stats count failed", zap.String("collection", name), zap.Error(err))
			return 0
		}
		return n
	}

	c.Blogs = count("blogs", func() (int64, error) { return h.blogs.Count(ctx, "") })
	c.BlogsPublished = count("blogs", func() (int64, error) { return h.blogs.Count(ctx, models.StatusPublished) })
	c.Pages = count("pages", func() (int64, error) { return h.pages.Count(ctx, "") })
	c.Products = count("products", func() (int64, error) { return h.products.Count(ctx, "") })
	c.Messages = count("contact_messages", func() (int64, error) { return h.messages.Count(ctx) })
	c.MessagesUnseen = count("contact_messages", func() (int64, error) { return h.messages.CountUnseen(ctx) })

	jsonutil.OK(w, c)
}

// Routes returns the stats API router. Mounted at /api/stats.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}
