// internal/app/store/pages/pagestore.go
package pagestore

import (
	"context"
	"time"

	"github.com/dimondcastle/cms/internal/app/store/storeutil"
	"github.com/dimondcastle/cms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the pages collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new page store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pages")}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status string
	Search string // matched against slug and both titles
	Page   int64
	Limit  int64
}

// List returns pages matching the filter, newest-updated first, plus the
// total count before pagination.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Page, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		re := storeutil.SearchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"slug": re},
			bson.M{"en.title": re},
			bson.M{"ar.title": re},
		}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := storeutil.Paginate(f.Limit, f.Page).SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var pages []models.Page
	if err := cur.All(ctx, &pages); err != nil {
		return nil, 0, err
	}
	return pages, total, nil
}

// GetByID returns a page by its ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Page, error) {
	var page models.Page
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&page)
	if err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// GetBySlug returns a page by its path-style slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Page, error) {
	var page models.Page
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&page)
	if err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// GetPublishedBySlug returns a page only when it is published. The public
// site uses this so drafts never leak.
func (s *Store) GetPublishedBySlug(ctx context.Context, slug string) (models.Page, error) {
	var page models.Page
	err := s.c.FindOne(ctx, bson.M{"slug": slug, "status": models.StatusPublished}).Decode(&page)
	if err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// Create inserts a new page. The unique slug index surfaces duplicates as a
// duplicate-key error the handler maps to 409.
func (s *Store) Create(ctx context.Context, page models.Page) (models.Page, error) {
	now := time.Now().UTC()
	page.ID = primitive.NewObjectID()
	page.CreatedAt = now
	page.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, page); err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// Replace overwrites a page document by id and returns the updated document.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, page models.Page) (models.Page, error) {
	page.ID = id
	page.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"slug":       page.Slug,
		"status":     page.Status,
		"en":         page.En,
		"ar":         page.Ar,
		"updated_at": page.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Page
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out)
	if err != nil {
		return models.Page{}, err
	}
	return out, nil
}

// Patch applies a partial update (top-level fields only) and returns the
// updated document. Last write wins.
func (s *Store) Patch(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Page, error) {
	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Page
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return models.Page{}, err
	}
	return out, nil
}

// Delete removes a page by id. Returns mongo.ErrNoDocuments when absent.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SlugExists checks whether a slug is taken, optionally excluding one
// document (for edit forms checking their own slug).
func (s *Store) SlugExists(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	count, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert creates or updates a page by slug. Used by seeding.
func (s *Store) Upsert(ctx context.Context, page models.Page) error {
	now := time.Now().UTC()

	filter := bson.M{"slug": page.Slug}
	update := bson.M{
		"$set": bson.M{
			"status":     page.Status,
			"en":         page.En,
			"ar":         page.Ar,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"slug":       page.Slug,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// Count returns the number of pages matching the optional status.
func (s *Store) Count(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.c.CountDocuments(ctx, filter)
}
