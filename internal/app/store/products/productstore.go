// internal/app/store/products/productstore.go
package productstore

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

// Store provides access to the products collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new product store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("products")}
}

// ListFilter narrows List results. Zero values mean "no filter";
// Featured/InStock are tri-state via pointers.
type ListFilter struct {
	Status   string
	Search   string
	Featured *bool
	InStock  *bool
	Page     int64
	Limit    int64
}

// List returns products matching the filter (featured first, then newest)
// plus the total count before pagination.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Product, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	if f.InStock != nil {
		filter["in_stock"] = *f.InStock
	}
	if f.Search != "" {
		re := storeutil.SearchRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"slug": re},
			bson.M{"en.name": re},
			bson.M{"ar.name": re},
		}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := storeutil.Paginate(f.Limit, f.Page).SetSort(bson.D{
		{Key: "featured", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID returns a product by its ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// GetBySlug returns a product by its slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	var p models.Product
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// GetPublishedBySlug returns a product only when it is published.
func (s *Store) GetPublishedBySlug(ctx context.Context, slug string) (models.Product, error) {
	var p models.Product
	err := s.c.FindOne(ctx, bson.M{"slug": slug, "status": models.StatusPublished}).Decode(&p)
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Create inserts a new product.
func (s *Store) Create(ctx context.Context, p models.Product) (models.Product, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Replace overwrites a product by id and returns the updated document.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, p models.Product) (models.Product, error) {
	p.ID = id
	p.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"slug":             p.Slug,
		"status":           p.Status,
		"featured":         p.Featured,
		"in_stock":         p.InStock,
		"image_public_ids": p.ImagePublicIDs,
		"en":               p.En,
		"ar":               p.Ar,
		"updated_at":       p.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Product
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out)
	if err != nil {
		return models.Product{}, err
	}
	return out, nil
}

// Patch applies a partial update (top-level fields only) and returns the
// updated document. Last write wins.
func (s *Store) Patch(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Product, error) {
	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Product
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return models.Product{}, err
	}
	return out, nil
}

// Delete removes a product by id. Returns mongo.ErrNoDocuments when absent.
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

// SlugExists checks whether a slug is taken, optionally excluding one product.
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

// IncViews bumps the view counter for a product by slug.
func (s *Store) IncViews(ctx context.Context, slug string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"slug": slug},
		bson.M{"$inc": bson.M{"view_count": 1}},
	)
	return err
}

// Count returns the number of products matching the optional status.
func (s *Store) Count(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.c.CountDocuments(ctx, filter)
}
