package model

import (
	"time"

	"gorm.io/gorm"
)

// MaxDisplayedPerProduct caps how many feedback entries can be surfaced
// on a product page at the same time.
const MaxDisplayedPerProduct = 3

// Feedback is one per-order submission holding per-product entries.
type Feedback struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"uniqueIndex;not null" json:"order_id"` // one submission per order
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order             `gorm:"foreignKey:OrderID" json:"-"`
	Entries []ProductFeedback `gorm:"foreignKey:FeedbackID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

type ProductFeedback struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	FeedbackID  uint           `gorm:"not null;index" json:"feedback_id"`
	ProductID   uint           `gorm:"not null;index" json:"product_id"`
	Rating      int            `gorm:"not null" json:"rating"` // 1-5
	Comment     string         `gorm:"type:text" json:"comment"`
	IsDisplayed bool           `gorm:"default:false;index" json:"is_displayed"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Feedback Feedback `gorm:"foreignKey:FeedbackID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductFeedback) TableName() string {
	return "product_feedbacks"
}
