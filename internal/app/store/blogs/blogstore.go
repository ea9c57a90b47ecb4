// internal/app/store/blogs/blogstore.go
package blogstore

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

// Store provides access to the blogs collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new blog store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blogs")}
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status string
	Search string
	Page   int64
	Limit  int64
}

// List returns blog posts matching the filter, newest first, plus the total
// count before pagination.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Blog, int64, error) {
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

	opts := storeutil.Paginate(f.Limit, f.Page).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var posts []models.Blog
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID returns a blog post by its ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error) {
	var post models.Blog
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		return models.Blog{}, err
	}
	return post, nil
}

// GetBySlug returns a blog post by its slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Blog, error) {
	var post models.Blog
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&post)
	if err != nil {
		return models.Blog{}, err
	}
	return post, nil
}

// GetPublishedBySlug returns a post only when it is published.
func (s *Store) GetPublishedBySlug(ctx context.Context, slug string) (models.Blog, error) {
	var post models.Blog
	err := s.c.FindOne(ctx, bson.M{"slug": slug, "status": models.StatusPublished}).Decode(&post)
	if err != nil {
		return models.Blog{}, err
	}
	return post, nil
}

// Create inserts a new blog post.
func (s *Store) Create(ctx context.Context, post models.Blog) (models.Blog, error) {
	now := time.Now().UTC()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, post); err != nil {
		return models.Blog{}, err
	}
	return post, nil
}

// Replace overwrites a blog post by id and returns the updated document.
// The view counter is not part of the replace; it only moves via IncViews.
func (s *Store) Replace(ctx context.Context, id primitive.ObjectID, post models.Blog) (models.Blog, error) {
	post.ID = id
	post.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"slug":            post.Slug,
		"status":          post.Status,
		"cover_public_id": post.CoverPublicID,
		"en":              post.En,
		"ar":              post.Ar,
		"updated_at":      post.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Blog
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out)
	if err != nil {
		return models.Blog{}, err
	}
	return out, nil
}

// Patch applies a partial update (top-level fields only) and returns the
// updated document. Last write wins.
func (s *Store) Patch(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Blog, error) {
	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Blog
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return models.Blog{}, err
	}
	return out, nil
}

// Delete removes a blog post by id. Returns mongo.ErrNoDocuments when absent.
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

// SlugExists checks whether a slug is taken, optionally excluding one post.
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

// IncViews bumps the view counter for a post by slug. Fire-and-forget from
// the public site; a lost increment is acceptable.
func (s *Store) IncViews(ctx context.Context, slug string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"slug": slug},
		bson.M{"$inc": bson.M{"view_count": 1}},
	)
	return err
}

// Count returns the number of posts matching the optional status.
func (s *Store) Count(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.c.CountDocuments(ctx, filter)
}
