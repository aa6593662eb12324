package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryClassic  ProductCategory = "classic"
	CategoryPremium  ProductCategory = "premium"
	CategoryVegan    ProductCategory = "vegan"
	CategorySeasonal ProductCategory = "seasonal"
)

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryClassic, CategoryPremium, CategoryVegan, CategorySeasonal:
		return true
	}
	return false
}

type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    ProductCategory `gorm:"type:varchar(50);not null" json:"category"`
	ImageURL    string          `json:"image_url"`
	IsAvailable bool            `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Variants []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// Variant is a purchasable SKU within a product (e.g. "Box of 6"),
// carrying its own price and stock count.
type Variant struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProductID     uint           `gorm:"index;not null" json:"product_id"`
	Name          string         `gorm:"not null" json:"name"`
	Price         float64        `gorm:"not null" json:"price"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	InStock       bool           `gorm:"default:false" json:"in_stock"` // always StockQuantity > 0, never set directly
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (Variant) TableName() string {
	return "variants"
}

// SetStock is the single path through which stock changes. It keeps the
// InStock flag derived from the quantity.
func (v *Variant) SetStock(quantity int) {
	v.StockQuantity = quantity
	v.InStock = quantity > 0
}
