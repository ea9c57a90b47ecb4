// Package navapi provides the admin JSON API for the navigation menu.
//
// The menu is one tree, replaced atomically on save. Internal items point
// at page slugs by value; deleting a page leaves its menu entries dangling
// and the public site simply renders them as dead links until the menu is
// edited.
package navapi

import (
	"net/http"
	"strconv"

	navstore "github.com/dimondcastle/cms/internal/app/store/nav"
	"github.com/dimondcastle/cms/internal/app/system/inputval"
	"github.com/dimondcastle/cms/internal/app/system/jsonutil"
	"github.com/dimondcastle/cms/internal/app/system/slugs"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxDepth caps menu nesting. Deeper trees are a data-entry mistake.
const maxDepth = 4

// Handler handles navigation API requests.
type Handler struct {
	store  *navstore.Store
	logger *zap.Logger
}

// NewHandler creates a new navigation API handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		store:  navstore.New(db),
		logger: logger,
	}
}

// GetTree handles GET /: the full menu tree.
func (h *Handler) GetTree(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.GetTree(r.Context())
	if err != nil {
		h.logger.Error("failed to get navigation", zap.Error(err))
		jsonutil.InternalError(w, "failed to get navigation")
		return
	}
	jsonutil.OK(w, map[string]any{"items": items})
}

// ReplaceInput is the PUT payload: the complete new tree.
type ReplaceInput struct {
	Items []models.NavItem `json:"items"`
}

// ReplaceTree handles PUT /: swaps the whole menu.
func (h *Handler) ReplaceTree(w http.ResponseWriter, r *http.Request) {
	var in ReplaceInput
	if err := jsonutil.Decode(w, r, &in); err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if in.Items == nil {
		in.Items = []models.NavItem{}
	}

	fields := map[string]string{}
	validateItems(fields, "items", in.Items, 1)
	if len(fields) > 0 {
		jsonutil.ValidationError(w, fields)
		return
	}

	items, err := h.store.ReplaceTree(r.Context(), in.Items)
	if err != nil {
		h.logger.Error("failed to replace navigation", zap.Error(err))
		jsonutil.InternalError(w, "failed to save navigation")
		return
	}

	h.logger.Info("navigation replaced", zap.Int("top_level_items", len(items)))
	jsonutil.OK(w, map[string]any{"items": items})
}

// RemoveItem handles DELETE /{itemId}: removes one node and its subtree.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")
	if itemID == "" {
		jsonutil.BadRequest(w, "invalid item id")
		return
	}

	err := h.store.RemoveItem(r.Context(), itemID)
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "menu item not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to remove menu item", zap.String("item_id", itemID), zap.Error(err))
		jsonutil.InternalError(w, "failed to remove menu item")
		return
	}

	h.logger.Info("menu item removed", zap.String("item_id", itemID))
	jsonutil.NoContent(w)
}

// validateItems walks the submitted tree checking labels, kinds and hrefs.
func validateItems(fields map[string]string, path string, items []models.NavItem, depth int) {
	if depth > maxDepth {
		fields[path] = "Menu nesting is too deep."
		return
	}
	for i, it := range items {
		p := path + "[" + strconv.Itoa(i) + "]"
		if it.Label.En == "" && it.Label.Ar == "" {
			fields[p+".label"] = "A label in at least one language is required."
		}
		if !models.IsValidNavKind(it.Kind) {
			fields[p+".kind"] = "Kind must be internal or external."
			continue
		}
		switch it.Kind {
		case models.NavInternal:
			if !slugs.IsValidPagePath(it.Href) {
				fields[p+".href"] = "Internal items must point at a page path."
			}
		case models.NavExternal:
			if !inputval.IsValidHTTPURL(it.Href) {
				fields[p+".href"] = "External items must use an http(s) URL."
			}
		}
		validateItems(fields, p+".children", it.Children, depth+1)
	}
}
