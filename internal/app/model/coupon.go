package model

import (
	"time"

	"gorm.io/gorm"
)

type CouponType string

const (
	CouponTypeFixedAmount CouponType = "fixed_amount"
	CouponTypeFreeProduct CouponType = "free_product"
)

type Coupon struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Code      string     `gorm:"uniqueIndex;not null" json:"code"` // stored uppercase
	Type      CouponType `gorm:"type:varchar(20);not null" json:"type"`
	Value     float64    `gorm:"not null" json:"value"`
	MaxUses   *int       `json:"max_uses"` // nil = unlimited
	UsedCount int        `gorm:"default:0" json:"used_count"`
	ExpiresAt *time.Time `json:"expires_at"` // nil = never expires

	// IsActive carries no gorm default tag: with one, gorm omits a
	// false value from the insert and the coupon lands active. Callers
	// set it explicitly.
	IsActive bool `json:"is_active"`

	NewUsersOnly bool           `json:"new_users_only"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// Exhausted reports whether the coupon's global usage limit is reached.
func (c *Coupon) Exhausted() bool {
	return c.MaxUses != nil && c.UsedCount >= *c.MaxUses
}

// Expired reports whether the coupon's expiry date has passed.
func (c *Coupon) Expired() bool {
	return c.ExpiresAt != nil && time.Now().After(*c.ExpiresAt)
}

// CouponUsage records one redemption per registered user per coupon.
// The compound unique index is the enforcement point for the
// once-per-user rule. Guest redemptions never create a row here.
type CouponUsage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CouponID  uint      `gorm:"not null;index:idx_coupon_user_usage,unique" json:"coupon_id"`
	UserID    uint      `gorm:"not null;index:idx_coupon_user_usage,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Coupon Coupon `gorm:"foreignKey:CouponID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

func (CouponUsage) TableName() string {
	return "coupon_usages"
}
