// internal/app/store/singleton/singleton.go
package singleton

import (
	"context"
	"reflect"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages a singleton settings document of type T in its own
// collection. There is exactly one document per collection, guarded by a
// unique index on {singleton: 1}.
//
// Reads lazily create the document from defaults, so a fresh database
// serves a fully populated settings object on the first GET with no
// migration step. Writes merge top-level keys, last write wins.
type Store[T any] struct {
	c        *mongo.Collection
	defaults func() T
	keys     map[string]string // json key -> bson key for top-level merge
}

// document is the stored shape: the value nests under "value" so the
// singleton marker and bookkeeping never collide with T's own fields.
type document[T any] struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Singleton bool               `bson:"singleton"`
	Value     T                  `bson:"value"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// New creates a singleton store over the named collection. defaults builds
// the complete default value used for lazy creation and reset.
func New[T any](db *mongo.Database, collection string, defaults func() T) *Store[T] {
	return &Store[T]{
		c:        db.Collection(collection),
		defaults: defaults,
		keys:     fieldKeys[T](),
	}
}

var filter = bson.M{"singleton": true}

// Get returns the singleton value, creating it from defaults if the
// document does not exist yet.
func (s *Store[T]) Get(ctx context.Context) (T, error) {
	var doc document[T]
	err := s.c.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return s.create(ctx)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return doc.Value, nil
}

// create inserts the defaults document. $setOnInsert keeps it race-safe:
// two concurrent first reads both end up with the one stored document.
func (s *Store[T]) create(ctx context.Context) (T, error) {
	def := s.defaults()
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        primitive.NewObjectID(),
		"singleton":  true,
		"value":      def,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc document[T]
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if wafflemongo.IsDup(err) {
			// Lost the race; the other writer's document is the truth.
			return s.Get(ctx)
		}
		var zero T
		return zero, err
	}
	return doc.Value, nil
}

// Merge overwrites the top-level keys present in fields and leaves the rest
// of the document untouched, returning the updated value. Keys are the
// value's JSON names; unknown keys are ignored. Concurrent merges resolve
// last-write-wins per key.
func (s *Store[T]) Merge(ctx context.Context, fields map[string]any) (T, error) {
	// Make sure the document exists so a merge against a fresh database
	// lands on defaults rather than a sparse document.
	if _, err := s.Get(ctx); err != nil {
		var zero T
		return zero, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		if bk, ok := s.keys[k]; ok {
			set["value."+bk] = v
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc document[T]
	err := s.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		var zero T
		return zero, err
	}
	return doc.Value, nil
}

// Replace swaps the whole value and returns it.
func (s *Store[T]) Replace(ctx context.Context, value T) (T, error) {
	update := bson.M{
		"$set": bson.M{
			"singleton":  true,
			"value":      value,
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.c.UpdateOne(ctx, filter, update, opts); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Reset restores the defaults and returns them.
func (s *Store[T]) Reset(ctx context.Context) (T, error) {
	return s.Replace(ctx, s.defaults())
}

// fieldKeys maps T's top-level JSON field names to their BSON names, so
// Merge can translate API payload keys into update paths. Fields without a
// bson tag fall back to the driver default (lowercased field name).
func fieldKeys[T any]() map[string]string {
	var zero T
	t := reflect.TypeOf(zero)
	out := map[string]string{}
	if t == nil || t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		jsonKey := tagName(f.Tag.Get("json"), f.Name)
		bsonKey := tagName(f.Tag.Get("bson"), strings.ToLower(f.Name))
		if jsonKey == "-" || bsonKey == "-" {
			continue
		}
		out[jsonKey] = bsonKey
	}
	return out
}

func tagName(tag, fallback string) string {
	if tag == "" {
		return fallback
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return fallback
	}
	return name
}
