package repository

import (
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

type InventoryLogRepository interface {
	Create(log *model.InventoryLog) error
	FindAll(productID uint, limit, offset int) ([]model.InventoryLog, int64, error)
}

type inventoryLogRepository struct {
	db *gorm.DB
}

func NewInventoryLogRepository(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepository{db: db}
}

func (r *inventoryLogRepository) Create(log *model.InventoryLog) error {
	if err := r.db.Create(log).Error; err != nil {
		logger.Error("Failed to create inventory log in database", err, map[string]interface{}{
			"product_id":   log.ProductID,
			"variant_name": log.VariantName,
		})
		return err
	}
	return nil
}

func (r *inventoryLogRepository) FindAll(productID uint, limit, offset int) ([]model.InventoryLog, int64, error) {
	var logs []model.InventoryLog
	var total int64

	query := r.db.Model(&model.InventoryLog{})
	if productID != 0 {
		query = query.Where("product_id = ?", productID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if productID != 0 {
		listQuery = listQuery.Where("product_id = ?", productID)
	}
	if err := listQuery.Find(&logs).Error; err != nil {
		logger.Error("Failed to list inventory logs in database", err, nil)
		return nil, 0, err
	}
	return logs, total, nil
}
