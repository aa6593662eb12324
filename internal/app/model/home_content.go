package model

import (
	"time"

	"github.com/lib/pq"
)

// HomeContent is the singleton document holding all marketing copy.
// There is exactly one active row, upserted with defaults when absent.
type HomeContent struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	AppName      string         `gorm:"not null" json:"app_name"`
	HeroTitle    string         `gorm:"type:text" json:"hero_title"`
	HeroSubtitle string         `gorm:"type:text" json:"hero_subtitle"`
	AboutText    string         `gorm:"type:text" json:"about_text"`
	ContactText  string         `gorm:"type:text" json:"contact_text"`
	MenuText     string         `gorm:"type:text" json:"menu_text"`
	Values       pq.StringArray `gorm:"type:text[]" json:"values"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (HomeContent) TableName() string {
	return "home_contents"
}

// DefaultHomeContent is what the storefront shows before an admin has
// customized anything.
func DefaultHomeContent() *HomeContent {
	return &HomeContent{
		AppName:      "BiteBakers Brownies",
		HeroTitle:    "Freshly baked brownies, delivered to your door",
		HeroSubtitle: "Small-batch fudgy goodness, baked every morning",
		AboutText:    "We started baking brownies in a home kitchen and never stopped.",
		ContactText:  "Questions about an order? Drop us a message and we'll get back within a day.",
		MenuText:     "Every box is baked to order. Pick your favorites below.",
		Values:       pq.StringArray{"Fresh ingredients", "Baked daily", "Fast delivery"},
	}
}
