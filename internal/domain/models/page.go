// internal/domain/models/page.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page is a public site page built from predefined sections. Page slugs are
// path-style and start with "/" ("/", "/about", "/services/transport").
type Page struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug   string             `bson:"slug" json:"slug"`
	Status string             `bson:"status" json:"status"`

	En LocaleContent `bson:"en" json:"en"`
	Ar LocaleContent `bson:"ar" json:"ar"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HomeSlug is the slug of the landing page.
const HomeSlug = "/"

// IsPublished reports whether the page is publicly visible.
func (p *Page) IsPublished() bool {
	return p.Status == StatusPublished
}

// Content returns the locale half for the given locale, defaulting to
// English.
func (p *Page) Content(locale string) LocaleContent {
	if locale == LocaleAR {
		return p.Ar
	}
	return p.En
}
