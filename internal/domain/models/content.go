// internal/domain/models/content.go
package models

// Terminology: Locale content
//   - Every content document (page, blog, product) carries exactly one "en"
//     and one "ar" locale object. The two sides may diverge in depth and
//     section count; the renderer treats missing pieces as "render nothing".

// LocalizedText is a parallel EN/AR string pair. It is the smallest unit of
// the bilingual-field convention used across settings and navigation.
type LocalizedText struct {
	En string `bson:"en" json:"en"`
	Ar string `bson:"ar" json:"ar"`
}

// Get returns the text for the given locale.
func (t LocalizedText) Get(locale string) string {
	if locale == LocaleAR {
		return t.Ar
	}
	return t.En
}

// Locales supported by the site.
const (
	LocaleEN = "en"
	LocaleAR = "ar"
)

// SEO holds per-locale search metadata for a content document.
type SEO struct {
	Title           string   `bson:"title,omitempty" json:"title,omitempty"`
	Description     string   `bson:"description,omitempty" json:"description,omitempty"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	OGImagePublicID string   `bson:"og_image_public_id,omitempty" json:"ogImagePublicId,omitempty"`
}

// LocaleContent is the per-language copy of a content document: its title,
// SEO metadata, and section tree.
type LocaleContent struct {
	Title    string    `bson:"title" json:"title"`
	SEO      *SEO      `bson:"seo,omitempty" json:"seo,omitempty"`
	Sections []Section `bson:"sections,omitempty" json:"sections,omitempty"`
}

// BlockType discriminates the closed set of content block variants.
// Adding a block type means adding a case to every exhaustive switch over
// BlockType; the compiler-checked render package is the canonical one.
type BlockType string

const (
	BlockHeading     BlockType = "heading"
	BlockParagraph   BlockType = "paragraph"
	BlockImage       BlockType = "image"
	BlockVideo       BlockType = "video"
	BlockList        BlockType = "list"
	BlockQuote       BlockType = "quote"
	BlockLink        BlockType = "link"
	BlockEmbed       BlockType = "embed"
	BlockDivider     BlockType = "divider"
	BlockButton      BlockType = "button"
	BlockIconFeature BlockType = "icon-feature"
)

// AllBlockTypes lists every valid block type.
func AllBlockTypes() []BlockType {
	return []BlockType{
		BlockHeading, BlockParagraph, BlockImage, BlockVideo, BlockList,
		BlockQuote, BlockLink, BlockEmbed, BlockDivider, BlockButton,
		BlockIconFeature,
	}
}

// IsValidBlockType reports whether t names a known block variant.
func IsValidBlockType(t BlockType) bool {
	for _, bt := range AllBlockTypes() {
		if bt == t {
			return true
		}
	}
	return false
}

// Block is the smallest unit of rich content inside a section. Type decides
// which of the other fields are meaningful; extra fields are ignored, not
// rejected. Text fields are plain strings; formatting comes from block type
// choice, never inline styling.
//
// Image and video blocks store a CDN public id that is resolved to a URL only
// at render time. URL is a literal fallback for non-CDN assets.
type Block struct {
	Type BlockType `bson:"type" json:"type"`

	// heading, paragraph, quote
	Text  string `bson:"text,omitempty" json:"text,omitempty"`
	Level int    `bson:"level,omitempty" json:"level,omitempty"` // heading 1-6
	Cite  string `bson:"cite,omitempty" json:"cite,omitempty"`   // quote attribution

	// image, video
	PublicID string `bson:"public_id,omitempty" json:"publicId,omitempty"`
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
	Alt      string `bson:"alt,omitempty" json:"alt,omitempty"`
	Caption  string `bson:"caption,omitempty" json:"caption,omitempty"`

	// list
	Items   []string `bson:"items,omitempty" json:"items,omitempty"`
	Ordered bool     `bson:"ordered,omitempty" json:"ordered,omitempty"`

	// link, button
	Href  string `bson:"href,omitempty" json:"href,omitempty"`
	Label string `bson:"label,omitempty" json:"label,omitempty"`
	Style string `bson:"style,omitempty" json:"style,omitempty"`

	// embed
	HTML string `bson:"html,omitempty" json:"html,omitempty"`

	// icon-feature
	Icon        string `bson:"icon,omitempty" json:"icon,omitempty"`
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// SectionKey discriminates the closed set of page-region layouts.
type SectionKey string

const (
	SectionHero           SectionKey = "hero"
	SectionIntroStory     SectionKey = "introStory"
	SectionVIPClients     SectionKey = "vipClients"
	SectionSectors        SectionKey = "sectors"
	SectionServices       SectionKey = "services"
	SectionTransportSteps SectionKey = "transportSteps"
	SectionContact        SectionKey = "contact"
	SectionRichText       SectionKey = "richText"
)

// AllSectionKeys lists every valid section key.
func AllSectionKeys() []SectionKey {
	return []SectionKey{
		SectionHero, SectionIntroStory, SectionVIPClients, SectionSectors,
		SectionServices, SectionTransportSteps, SectionContact,
		SectionRichText,
	}
}

// IsValidSectionKey reports whether k names a known section layout.
func IsValidSectionKey(k SectionKey) bool {
	for _, sk := range AllSectionKeys() {
		if sk == k {
			return true
		}
	}
	return false
}

// Section is a named page region. Key selects one of the fixed layout
// templates. En/Ar carry the key-specific locale data (hero expects
// heading/subheading/bgPublicId, sectors expects title/items, ...); the
// renderer reads them leniently and omits anything missing, so data-shape
// drift never errors at read time.
type Section struct {
	Key    SectionKey     `bson:"key" json:"key"`
	Label  string         `bson:"label,omitempty" json:"label,omitempty"`
	Style  string         `bson:"style,omitempty" json:"style,omitempty"`
	Rows   []Row          `bson:"rows,omitempty" json:"rows,omitempty"`
	Blocks []Block        `bson:"blocks,omitempty" json:"blocks,omitempty"`
	En     map[string]any `bson:"en,omitempty" json:"en,omitempty"`
	Ar     map[string]any `bson:"ar,omitempty" json:"ar,omitempty"`
	Props  map[string]any `bson:"props,omitempty" json:"props,omitempty"`
}

// LocaleData returns the section's locale-specific payload for a locale.
func (s Section) LocaleData(locale string) map[string]any {
	if locale == LocaleAR {
		return s.Ar
	}
	return s.En
}

// Row is a layout-only horizontal band of columns.
type Row struct {
	Align string    `bson:"align,omitempty" json:"align,omitempty"`
	Cols  []GridCol `bson:"cols,omitempty" json:"cols,omitempty"`
}

// GridCol is a responsive column inside a row. A column belongs to exactly
// one row and carries only layout hints plus its blocks.
type GridCol struct {
	Span   int     `bson:"span,omitempty" json:"span,omitempty"`
	SpanMD int     `bson:"span_md,omitempty" json:"spanMd,omitempty"`
	SpanLG int     `bson:"span_lg,omitempty" json:"spanLg,omitempty"`
	Align  string  `bson:"align,omitempty" json:"align,omitempty"`
	Blocks []Block `bson:"blocks,omitempty" json:"blocks,omitempty"`
}

// Content statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// IsValidStatus reports whether s is a known content status.
func IsValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}
