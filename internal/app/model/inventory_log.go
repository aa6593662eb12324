package model

import (
	"time"
)

type InventoryChangeType string

const (
	InventoryChangeIncrement InventoryChangeType = "increment"
	InventoryChangeDecrement InventoryChangeType = "decrement"
	InventoryChangeManual    InventoryChangeType = "manual"
	InventoryChangeOrder     InventoryChangeType = "order"
)

// InventoryLog is an append-only audit trail of stock mutations.
// Only manual admin adjustments write rows; the order path decrements
// stock without logging.
type InventoryLog struct {
	ID               uint                `gorm:"primarykey" json:"id"`
	ProductID        uint                `gorm:"not null;index" json:"product_id"`
	VariantName      string              `gorm:"not null" json:"variant_name"`
	PreviousQuantity int                 `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int                 `gorm:"not null" json:"new_quantity"`
	ChangeType       InventoryChangeType `gorm:"type:varchar(20);not null" json:"change_type"`
	Reason           string              `gorm:"type:text" json:"reason"`
	UpdatedBy        uint                `gorm:"index" json:"updated_by"`
	CreatedAt        time.Time           `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	Admin   User    `gorm:"foreignKey:UpdatedBy" json:"-"`
}

func (InventoryLog) TableName() string {
	return "inventory_logs"
}
