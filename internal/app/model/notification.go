package model

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeNewUser   NotificationType = "NEW_USER"
	NotificationTypeOrder     NotificationType = "ORDER"
	NotificationTypeFeedback  NotificationType = "FEEDBACK"
	NotificationTypeInventory NotificationType = "INVENTORY"
)

// Notification is an admin-facing event, persisted independently of
// websocket delivery.
type Notification struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	Type      NotificationType `gorm:"type:varchar(20);not null;index" json:"type"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	Data      string           `gorm:"type:text" json:"data,omitempty"` // serialized JSON payload
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
