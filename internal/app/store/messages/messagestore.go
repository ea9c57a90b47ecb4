// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"time"

	"github.com/dimondcastle/cms/internal/app/store/storeutil"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the contact_messages collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new contact message store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contact_messages")}
}

// Insert stores a new contact message and returns it with its generated
// reference token. The reference is what the submitter gets back; document
// ids stay internal.
func (s *Store) Insert(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	msg.ID = primitive.NewObjectID()
	msg.Reference = uuid.NewString()
	msg.Seen = false
	msg.Resolved = false
	msg.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, msg); err != nil {
		return models.ContactMessage{}, err
	}
	return msg, nil
}

// ListFilter narrows List results. Seen/Resolved are tri-state via pointers.
type ListFilter struct {
	Seen     *bool
	Resolved *bool
	Page     int64
	Limit    int64
}

// List returns messages newest first plus the total count before pagination.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.ContactMessage, int64, error) {
	filter := bson.M{}
	if f.Seen != nil {
		filter["seen"] = *f.Seen
	}
	if f.Resolved != nil {
		filter["resolved"] = *f.Resolved
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

	var msgs []models.ContactMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}

// GetByID returns a message by its ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ContactMessage, error) {
	var msg models.ContactMessage
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		return models.ContactMessage{}, err
	}
	return msg, nil
}

// SetFlags updates the seen/resolved flags (nil leaves a flag unchanged)
// and returns the updated message.
func (s *Store) SetFlags(ctx context.Context, id primitive.ObjectID, seen, resolved *bool) (models.ContactMessage, error) {
	set := bson.M{}
	if seen != nil {
		set["seen"] = *seen
	}
	if resolved != nil {
		set["resolved"] = *resolved
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.ContactMessage
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return models.ContactMessage{}, err
	}
	return out, nil
}

// Delete removes a message by id. Returns mongo.ErrNoDocuments when absent.
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

// CountUnseen returns the number of unseen messages (admin badge count).
func (s *Store) CountUnseen(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"seen": false})
}

// Count returns the total number of messages.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
