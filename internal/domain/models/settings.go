// internal/domain/models/settings.go
package models

// Singleton settings resources. Each type maps to a collection guaranteed to
// hold at most one document. Every Default* constructor materializes the full
// structure, nested objects included, so no settings object is ever partially
// undefined at runtime; merges happen on top of a complete document.

// BrandColors is the site color palette.
type BrandColors struct {
	Primary   string `bson:"primary" json:"primary"`
	Secondary string `bson:"secondary" json:"secondary"`
	Accent    string `bson:"accent" json:"accent"`
	Surface   string `bson:"surface" json:"surface"`
	Text      string `bson:"text" json:"text"`
}

// Typography holds font settings for both scripts.
type Typography struct {
	HeadingFont string `bson:"heading_font" json:"headingFont"`
	BodyFont    string `bson:"body_font" json:"bodyFont"`
	ArabicFont  string `bson:"arabic_font" json:"arabicFont"`
	BaseSizePx  int    `bson:"base_size_px" json:"baseSizePx"`
}

// DesignTokens holds spacing/radius/shadow presets.
type DesignTokens struct {
	RadiusPx  int    `bson:"radius_px" json:"radiusPx"`
	SpacingPx int    `bson:"spacing_px" json:"spacingPx"`
	Shadow    string `bson:"shadow" json:"shadow"`
}

// ThemeSettings is the theme/branding singleton.
type ThemeSettings struct {
	Brand      BrandColors  `bson:"brand" json:"brand"`
	Typography Typography   `bson:"typography" json:"typography"`
	Tokens     DesignTokens `bson:"design_tokens" json:"designTokens"`
}

// DefaultTheme returns the hardcoded theme defaults.
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		Brand: BrandColors{
			Primary:   "#0f3d5c",
			Secondary: "#b98b4e",
			Accent:    "#d9a441",
			Surface:   "#f7f6f2",
			Text:      "#1c1c1c",
		},
		Typography: Typography{
			HeadingFont: "Playfair Display",
			BodyFont:    "Inter",
			ArabicFont:  "Cairo",
			BaseSizePx:  16,
		},
		Tokens: DesignTokens{
			RadiusPx:  8,
			SpacingPx: 16,
			Shadow:    "soft",
		},
	}
}

// HeroSettings is the landing hero singleton.
type HeroSettings struct {
	Heading    LocalizedText `bson:"heading" json:"heading"`
	Subheading LocalizedText `bson:"subheading" json:"subheading"`
	BGPublicID string        `bson:"bg_public_id" json:"bgPublicId"`
	CTALabel   LocalizedText `bson:"cta_label" json:"ctaLabel"`
	CTAHref    string        `bson:"cta_href" json:"ctaHref"`
}

// DefaultHero returns the hardcoded hero defaults.
func DefaultHero() HeroSettings {
	return HeroSettings{
		Heading: LocalizedText{
			En: "Dimond Castle",
			Ar: "دايموند كاسل",
		},
		Subheading: LocalizedText{
			En: "Trading and transport, done right.",
			Ar: "التجارة والنقل على أكمل وجه.",
		},
		BGPublicID: "",
		CTALabel: LocalizedText{
			En: "Contact us",
			Ar: "تواصل معنا",
		},
		CTAHref: "/contact",
	}
}

// StorySettings is the company story singleton.
type StorySettings struct {
	Title         LocalizedText `bson:"title" json:"title"`
	Body          LocalizedText `bson:"body" json:"body"`
	ImagePublicID string        `bson:"image_public_id" json:"imagePublicId"`
}

// DefaultStory returns the hardcoded story defaults.
func DefaultStory() StorySettings {
	return StorySettings{
		Title: LocalizedText{En: "Our Story", Ar: "قصتنا"},
		Body: LocalizedText{
			En: "This section can be customized by an administrator.",
			Ar: "يمكن للمسؤول تخصيص هذا القسم.",
		},
		ImagePublicID: "",
	}
}

// VisionSettings is the company vision singleton.
type VisionSettings struct {
	Title LocalizedText `bson:"title" json:"title"`
	Body  LocalizedText `bson:"body" json:"body"`
}

// DefaultVision returns the hardcoded vision defaults.
func DefaultVision() VisionSettings {
	return VisionSettings{
		Title: LocalizedText{En: "Our Vision", Ar: "رؤيتنا"},
		Body: LocalizedText{
			En: "This section can be customized by an administrator.",
			Ar: "يمكن للمسؤول تخصيص هذا القسم.",
		},
	}
}

// ValueItem is one entry in the company values list.
type ValueItem struct {
	Icon        string        `bson:"icon" json:"icon"`
	Name        LocalizedText `bson:"name" json:"name"`
	Description LocalizedText `bson:"description" json:"description"`
}

// ValuesSettings is the company values singleton.
type ValuesSettings struct {
	Title LocalizedText `bson:"title" json:"title"`
	Items []ValueItem   `bson:"items" json:"items"`
}

// DefaultValues returns the hardcoded values defaults.
func DefaultValues() ValuesSettings {
	return ValuesSettings{
		Title: LocalizedText{En: "Our Values", Ar: "قيمنا"},
		Items: []ValueItem{},
	}
}

// ServiceItem is one entry in the services list.
type ServiceItem struct {
	Icon        string        `bson:"icon" json:"icon"`
	Name        LocalizedText `bson:"name" json:"name"`
	Description LocalizedText `bson:"description" json:"description"`
}

// ServicesSettings is the services singleton.
type ServicesSettings struct {
	Title LocalizedText `bson:"title" json:"title"`
	Items []ServiceItem `bson:"items" json:"items"`
}

// DefaultServices returns the hardcoded services defaults.
func DefaultServices() ServicesSettings {
	return ServicesSettings{
		Title: LocalizedText{En: "Our Services", Ar: "خدماتنا"},
		Items: []ServiceItem{},
	}
}

// ClientLogo is one entry in the clients strip.
type ClientLogo struct {
	Name         string `bson:"name" json:"name"`
	LogoPublicID string `bson:"logo_public_id" json:"logoPublicId"`
	URL          string `bson:"url,omitempty" json:"url,omitempty"`
}

// ClientsSettings is the VIP clients singleton.
type ClientsSettings struct {
	Title LocalizedText `bson:"title" json:"title"`
	Logos []ClientLogo  `bson:"logos" json:"logos"`
}

// DefaultClients returns the hardcoded clients defaults.
func DefaultClients() ClientsSettings {
	return ClientsSettings{
		Title: LocalizedText{En: "Our Clients", Ar: "عملاؤنا"},
		Logos: []ClientLogo{},
	}
}

// ContactInfo is the contact details singleton.
type ContactInfo struct {
	Title       LocalizedText `bson:"title" json:"title"`
	Email       string        `bson:"email" json:"email"`
	Phone       string        `bson:"phone" json:"phone"`
	WhatsApp    string        `bson:"whatsapp" json:"whatsapp"`
	Address     LocalizedText `bson:"address" json:"address"`
	MapEmbedURL string        `bson:"map_embed_url" json:"mapEmbedUrl"`
}

// DefaultContactInfo returns the hardcoded contact defaults.
func DefaultContactInfo() ContactInfo {
	return ContactInfo{
		Title:       LocalizedText{En: "Get in touch", Ar: "تواصل معنا"},
		Email:       "info@example.com",
		Phone:       "",
		WhatsApp:    "",
		Address:     LocalizedText{},
		MapEmbedURL: "",
	}
}

// SiteSEO is the site-wide SEO singleton.
type SiteSEO struct {
	SiteName        LocalizedText `bson:"site_name" json:"siteName"`
	TitleTemplate   string        `bson:"title_template" json:"titleTemplate"`
	Description     LocalizedText `bson:"description" json:"description"`
	OGImagePublicID string        `bson:"og_image_public_id" json:"ogImagePublicId"`
	TwitterHandle   string        `bson:"twitter_handle" json:"twitterHandle"`
}

// DefaultSiteSEO returns the hardcoded site SEO defaults.
func DefaultSiteSEO() SiteSEO {
	return SiteSEO{
		SiteName:        LocalizedText{En: "Dimond Castle", Ar: "دايموند كاسل"},
		TitleTemplate:   "%s | Dimond Castle",
		Description:     LocalizedText{},
		OGImagePublicID: "",
		TwitterHandle:   "",
	}
}
