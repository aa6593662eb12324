package repository

import (
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByID(id uint) (*model.Notification, error)
	FindAll(limit, offset int) ([]model.Notification, int64, error)
	CountUnread() (int64, error)
	MarkAsRead(id uint) error
	MarkAllAsRead() error
	DeleteAll() error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		logger.Error("Failed to create notification in database", err, map[string]interface{}{
			"type": notification.Type,
		})
		return err
	}
	return nil
}

func (r *notificationRepository) FindByID(id uint) (*model.Notification, error) {
	var notification model.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindAll(limit, offset int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	if err := r.db.Model(&model.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&notifications).Error; err != nil {
		logger.Error("Failed to list notifications in database", err, nil)
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notification{}).Where("is_read = ?", false).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) MarkAsRead(id uint) error {
	result := r.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		logger.Error("Failed to mark notification as read", result.Error, map[string]interface{}{
			"notification_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead() error {
	if err := r.db.Model(&model.Notification{}).Where("is_read = ?", false).
		Update("is_read", true).Error; err != nil {
		logger.Error("Failed to mark all notifications as read", err, nil)
		return err
	}
	return nil
}

func (r *notificationRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&model.Notification{}).Error; err != nil {
		logger.Error("Failed to clear notifications", err, nil)
		return err
	}
	return nil
}
