package models

import (
	"gorm.io/gorm"
)

// Landing section kinds rendered by the storefront landing page.
const (
	SectionKindHero     = "hero"
	SectionKindBanner   = "banner"
	SectionKindFeatured = "featured"
	SectionKindText     = "text"
)

// LandingSection is one block of the storefront landing page, managed from
// the admin console and rendered in Position order.
type LandingSection struct {
	gorm.Model
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url"`
	LinkURL   string `json:"link_url"`
	Position  int    `json:"position" gorm:"default:0"`
	Published bool   `json:"published" gorm:"default:false"`
}
