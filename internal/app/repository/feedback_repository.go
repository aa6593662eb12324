package repository

import (
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(feedback *model.Feedback) error
	FindByID(id uint) (*model.Feedback, error)
	FindByOrderID(orderID uint) (*model.Feedback, error)
	FindAll(limit, offset int) ([]model.Feedback, int64, error)
	FindEntry(entryID uint) (*model.ProductFeedback, error)
	UpdateEntry(entry *model.ProductFeedback) error
	FindDisplayedByProduct(productID uint) ([]model.ProductFeedback, error)
	CountDisplayedForProduct(productID, excludeEntryID uint) (int64, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *model.Feedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		logger.Error("Failed to create feedback in database", err, map[string]interface{}{
			"order_id": feedback.OrderID,
		})
		return err
	}
	return nil
}

func (r *feedbackRepository) FindByID(id uint) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := r.db.Preload("Entries").First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindByOrderID(orderID uint) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := r.db.Preload("Entries").Where("order_id = ?", orderID).First(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindAll(limit, offset int) ([]model.Feedback, int64, error) {
	var feedbacks []model.Feedback
	var total int64

	if err := r.db.Model(&model.Feedback{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Preload("Entries").Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&feedbacks).Error; err != nil {
		logger.Error("Failed to list feedbacks in database", err, nil)
		return nil, 0, err
	}
	return feedbacks, total, nil
}

func (r *feedbackRepository) FindEntry(entryID uint) (*model.ProductFeedback, error) {
	var entry model.ProductFeedback
	if err := r.db.First(&entry, entryID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *feedbackRepository) UpdateEntry(entry *model.ProductFeedback) error {
	if err := r.db.Save(entry).Error; err != nil {
		logger.Error("Failed to update feedback entry in database", err, map[string]interface{}{
			"entry_id": entry.ID,
		})
		return err
	}
	return nil
}

func (r *feedbackRepository) FindDisplayedByProduct(productID uint) ([]model.ProductFeedback, error) {
	var entries []model.ProductFeedback
	if err := r.db.Where("product_id = ? AND is_displayed = ?", productID, true).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		logger.Error("Failed to find displayed feedbacks in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return entries, nil
}

// CountDisplayedForProduct counts displayed entries for a product,
// excluding the entry being toggled so re-enabling an already displayed
// entry stays idempotent.
func (r *feedbackRepository) CountDisplayedForProduct(productID, excludeEntryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.ProductFeedback{}).
		Where("product_id = ? AND is_displayed = ? AND id <> ?", productID, true, excludeEntryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
