package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusReceived       OrderStatus = "received"
	OrderStatusBaking         OrderStatus = "baking"
	OrderStatusOutForDelivery OrderStatus = "out for delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusRefunded       OrderStatus = "refunded"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ValidOrderStatus reports whether s belongs to the closed status set.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusReceived, OrderStatusBaking, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusRefunded:
		return true
	}
	return false
}

type Order struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID        *uint         `gorm:"index" json:"user_id,omitempty"` // nil for guest orders
	GuestEmail    string        `gorm:"index" json:"guest_email,omitempty"`
	TotalAmount   float64       `gorm:"not null" json:"total_amount"`
	Status        OrderStatus   `gorm:"type:varchar(20);default:'received'" json:"status"`
	PaymentMethod string        `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`

	// Coupon snapshot at purchase time. Later coupon edits must not
	// retroactively alter historical orders.
	CouponCode  string     `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	CouponType  CouponType `gorm:"type:varchar(20)" json:"coupon_type,omitempty"`
	CouponValue float64    `json:"coupon_value,omitempty"`

	// Delivery details, attached when the order moves to "out for delivery".
	DeliveryCourier string `gorm:"type:varchar(100)" json:"delivery_courier,omitempty"`
	DeliveryNote    string `gorm:"type:text" json:"delivery_note,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// IsGuest reports whether the order has no registered owner.
func (o *Order) IsGuest() bool {
	return o.UserID == nil
}

// ContactEmail resolves the address order mail goes to: the registered
// user's email when present, otherwise the guest email.
func (o *Order) ContactEmail() string {
	if o.User != nil && o.User.Email != "" {
		return o.User.Email
	}
	return o.GuestEmail
}

// OrderItem is a snapshot of the product/variant at purchase time.
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"not null;index" json:"order_id"`
	ProductID   uint           `gorm:"not null;index" json:"product_id"`
	ProductName string         `gorm:"not null" json:"product_name"`
	VariantName string         `gorm:"not null" json:"variant_name"`
	Price       float64        `gorm:"not null" json:"price"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
