// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessage is an append-only record of a public contact form
// submission. Seen and Resolved are mutated independently by admins; the
// message body itself is never edited.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Reference string             `bson:"reference" json:"reference"` // opaque token quoted in follow-up mail

	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject string `bson:"subject,omitempty" json:"subject,omitempty"`
	Body    string `bson:"body" json:"body"`

	Seen     bool `bson:"seen" json:"seen"`
	Resolved bool `bson:"resolved" json:"resolved"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
