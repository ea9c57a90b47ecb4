// internal/domain/models/blog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is an article with parallel EN/AR locale content. The body lives in
// the locale section trees (typically a single richText section).
type Blog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug          string             `bson:"slug" json:"slug"`
	Status        string             `bson:"status" json:"status"`
	CoverPublicID string             `bson:"cover_public_id,omitempty" json:"coverPublicId,omitempty"`
	ViewCount     int64              `bson:"view_count" json:"viewCount"`

	En LocaleContent `bson:"en" json:"en"`
	Ar LocaleContent `bson:"ar" json:"ar"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPublished reports whether the article is publicly visible.
func (b *Blog) IsPublished() bool {
	return b.Status == StatusPublished
}

// Content returns the locale half for the given locale, defaulting to
// English.
func (b *Blog) Content(locale string) LocaleContent {
	if locale == LocaleAR {
		return b.Ar
	}
	return b.En
}
