// internal/domain/models/product.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductLocale is the per-language copy of a catalog entry.
type ProductLocale struct {
	Name     string    `bson:"name" json:"name"`
	Summary  string    `bson:"summary,omitempty" json:"summary,omitempty"`
	SEO      *SEO      `bson:"seo,omitempty" json:"seo,omitempty"`
	Sections []Section `bson:"sections,omitempty" json:"sections,omitempty"`
}

// Product is a catalog entry with parallel EN/AR locale objects.
type Product struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug   string             `bson:"slug" json:"slug"`
	Status string             `bson:"status" json:"status"`

	Featured  bool  `bson:"featured" json:"featured"`
	InStock   bool  `bson:"in_stock" json:"inStock"`
	ViewCount int64 `bson:"view_count" json:"viewCount"`

	ImagePublicIDs []string `bson:"image_public_ids,omitempty" json:"imagePublicIds,omitempty"`

	En ProductLocale `bson:"en" json:"en"`
	Ar ProductLocale `bson:"ar" json:"ar"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPublished reports whether the product is publicly visible.
func (p *Product) IsPublished() bool {
	return p.Status == StatusPublished
}

// Content returns the locale half for the given locale, defaulting to
// English.
func (p *Product) Content(locale string) ProductLocale {
	if locale == LocaleAR {
		return p.Ar
	}
	return p.En
}
