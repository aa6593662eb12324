package service

import (
	"encoding/json"
	"fmt"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/internal/websocket"
	"github.com/bitebakers/brownie-backend/pkg/logger"
)

// LowStockThreshold is the quantity at or below which an inventory
// alert is raised. Both the checkout path and manual stock adjustments
// go through the same check.
const LowStockThreshold = 20

type NotificationService interface {
	List(limit, offset int) ([]model.Notification, int64, error)
	UnreadCount() (int64, error)
	MarkAsRead(id uint) error
	MarkAllAsRead() error
	ClearAll() error

	NotifyNewUser(user *model.User)
	NotifyNewOrder(order *model.Order)
	NotifyNewFeedback(orderNumber string, entryCount int)
	NotifyLowStock(product *model.Product, variant *model.Variant)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	hub              *websocket.Hub
}

func NewNotificationService(notificationRepo repository.NotificationRepository, hub *websocket.Hub) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
	}
}

func (s *notificationService) List(limit, offset int) ([]model.Notification, int64, error) {
	return s.notificationRepo.FindAll(limit, offset)
}

func (s *notificationService) UnreadCount() (int64, error) {
	return s.notificationRepo.CountUnread()
}

func (s *notificationService) MarkAsRead(id uint) error {
	return s.notificationRepo.MarkAsRead(id)
}

func (s *notificationService) MarkAllAsRead() error {
	return s.notificationRepo.MarkAllAsRead()
}

func (s *notificationService) ClearAll() error {
	return s.notificationRepo.DeleteAll()
}

// notify persists the notification and pushes it to connected admin
// sessions. Failures are logged and swallowed: notifications never
// block the operation that triggered them.
func (s *notificationService) notify(notificationType model.NotificationType, message string, data interface{}) {
	var serialized string
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.Error("Failed to serialize notification data", err, map[string]interface{}{
				"type": notificationType,
			})
		} else {
			serialized = string(raw)
		}
	}

	notification := &model.Notification{
		Type:    notificationType,
		Message: message,
		Data:    serialized,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("Failed to persist notification", err, map[string]interface{}{
			"type":    notificationType,
			"message": message,
		})
		return
	}

	if s.hub == nil {
		return
	}
	if err := s.hub.Broadcast(websocket.Event{
		Type:    string(notificationType),
		Message: message,
		Data:    data,
	}); err != nil {
		logger.Error("Failed to push notification", err, map[string]interface{}{
			"type": notificationType,
		})
	}
}

func (s *notificationService) NotifyNewUser(user *model.User) {
	s.notify(model.NotificationTypeNewUser,
		fmt.Sprintf("New customer registered: %s", user.Email),
		map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
			"name":    user.Name,
		})
}

func (s *notificationService) NotifyNewOrder(order *model.Order) {
	s.notify(model.NotificationTypeOrder,
		fmt.Sprintf("New order %s (%.2f)", order.OrderNumber, order.TotalAmount),
		map[string]interface{}{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
		})
}

func (s *notificationService) NotifyNewFeedback(orderNumber string, entryCount int) {
	s.notify(model.NotificationTypeFeedback,
		fmt.Sprintf("New feedback received for order %s", orderNumber),
		map[string]interface{}{
			"order_number": orderNumber,
			"entry_count":  entryCount,
		})
}

// NotifyLowStock raises an inventory alert for a variant that dropped
// to or below the threshold.
func (s *notificationService) NotifyLowStock(product *model.Product, variant *model.Variant) {
	s.notify(model.NotificationTypeInventory,
		fmt.Sprintf("Low stock: %s (%s) has %d left", product.Name, variant.Name, variant.StockQuantity),
		map[string]interface{}{
			"product_id":   product.ID,
			"product_name": product.Name,
			"variant_name": variant.Name,
			"new_quantity": variant.StockQuantity,
			"threshold":    LowStockThreshold,
		})
}
