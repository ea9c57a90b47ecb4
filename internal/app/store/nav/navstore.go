// internal/app/store/nav/navstore.go
package navstore

import (
	"context"
	"time"

	"github.com/dimondcastle/cms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the navigation collection.
// The whole menu tree is one singleton document; edits replace the tree
// atomically so readers never see a half-saved menu.
type Store struct {
	c *mongo.Collection
}

// treeDoc is the stored shape of the navigation singleton.
type treeDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Singleton bool               `bson:"singleton"`
	Items     []models.NavItem   `bson:"items"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// New creates a new navigation store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("navigation")}
}

// GetTree returns the current menu tree. A missing document is an empty
// menu, not an error.
func (s *Store) GetTree(ctx context.Context) ([]models.NavItem, error) {
	var doc treeDoc
	err := s.c.FindOne(ctx, bson.M{"singleton": true}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []models.NavItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Items == nil {
		doc.Items = []models.NavItem{}
	}
	return doc.Items, nil
}

// ReplaceTree swaps in a new menu tree and returns it. Items without an id
// are assigned one so the admin UI can address nodes on the next edit.
func (s *Store) ReplaceTree(ctx context.Context, items []models.NavItem) ([]models.NavItem, error) {
	assignIDs(items)

	filter := bson.M{"singleton": true}
	update := bson.M{
		"$set": bson.M{
			"singleton":  true,
			"items":      items,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, filter, update, opts); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem deletes the node with the given id (and its subtree) from the
// menu. Returns mongo.ErrNoDocuments when no node matched.
//
// Pages the removed items linked to are untouched; menu entries are
// pointers, not owners.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	items, err := s.GetTree(ctx)
	if err != nil {
		return err
	}

	pruned, removed := prune(items, id)
	if !removed {
		return mongo.ErrNoDocuments
	}

	_, err = s.ReplaceTree(ctx, pruned)
	return err
}

// assignIDs fills in missing node ids, depth first.
func assignIDs(items []models.NavItem) {
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		assignIDs(items[i].Children)
	}
}

// prune removes the node with the given id from the tree, returning the new
// tree and whether anything was removed.
func prune(items []models.NavItem, id string) ([]models.NavItem, bool) {
	out := make([]models.NavItem, 0, len(items))
	removed := false
	for _, it := range items {
		if it.ID.Hex() == id {
			removed = true
			continue
		}
		children, r := prune(it.Children, id)
		if r {
			removed = true
		}
		it.Children = children
		out = append(out, it)
	}
	return out, removed
}
