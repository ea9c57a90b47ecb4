// internal/domain/models/nav.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NavItemKind tells whether a nav item points at a site page or an external URL.
type NavItemKind string

const (
	NavInternal NavItemKind = "internal" // href is a page slug
	NavExternal NavItemKind = "external" // href is an arbitrary URL
)

// IsValidNavKind reports whether k is a known nav item kind.
func IsValidNavKind(k NavItemKind) bool {
	return k == NavInternal || k == NavExternal
}

// NavItem is a node in the site navigation tree. Order sequences siblings.
// Deleting a page does not clean up nav items pointing at its slug; a
// dangling internal href renders as a dead link (known data-integrity gap).
type NavItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Label    LocalizedText      `bson:"label" json:"label"`
	Kind     NavItemKind        `bson:"kind" json:"kind"`
	Href     string             `bson:"href" json:"href"`
	Order    int                `bson:"order" json:"order"`
	Children []NavItem          `bson:"children,omitempty" json:"children,omitempty"`
}
