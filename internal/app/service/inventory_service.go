package service

import (
	"errors"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrVariantNotFound  = errors.New("variant not found")
	ErrNegativeQuantity = errors.New("stock quantity cannot be negative")
)

type UpdateStockInput struct {
	ProductID   uint
	VariantName string
	NewQuantity int
	Reason      string
	UpdatedBy   uint // admin user ID
}

type InventoryService interface {
	UpdateStock(input UpdateStockInput) (*model.Variant, error)
	Logs(productID uint, limit, offset int) ([]model.InventoryLog, int64, error)
}

type inventoryService struct {
	productRepo   repository.ProductRepository
	logRepo       repository.InventoryLogRepository
	notifications NotificationService
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	notifications NotificationService,
) InventoryService {
	return &inventoryService{
		productRepo:   productRepo,
		logRepo:       logRepo,
		notifications: notifications,
	}
}

// UpdateStock applies a manual admin adjustment. Every adjustment
// writes an audit log row; checkout decrements do not go through here
// and stay out of the log.
func (s *inventoryService) UpdateStock(input UpdateStockInput) (*model.Variant, error) {
	if input.NewQuantity < 0 {
		return nil, ErrNegativeQuantity
	}

	product, err := s.productRepo.FindByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variant, err := s.productRepo.FindVariant(input.ProductID, input.VariantName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	previous := variant.StockQuantity
	variant.SetStock(input.NewQuantity)
	if err := s.productRepo.UpdateVariant(variant); err != nil {
		return nil, err
	}

	changeType := model.InventoryChangeManual
	switch {
	case input.NewQuantity > previous:
		changeType = model.InventoryChangeIncrement
	case input.NewQuantity < previous:
		changeType = model.InventoryChangeDecrement
	}

	entry := &model.InventoryLog{
		ProductID:        input.ProductID,
		VariantName:      input.VariantName,
		PreviousQuantity: previous,
		NewQuantity:      input.NewQuantity,
		ChangeType:       changeType,
		Reason:           input.Reason,
		UpdatedBy:        input.UpdatedBy,
	}
	if err := s.logRepo.Create(entry); err != nil {
		// The stock change already stuck; losing an audit row is worth
		// a log line, not a failed request.
		logger.Error("Failed to write inventory log", err, map[string]interface{}{
			"product_id":   input.ProductID,
			"variant_name": input.VariantName,
		})
	}

	logger.Info("Stock updated", map[string]interface{}{
		"product_id":   input.ProductID,
		"variant_name": input.VariantName,
		"previous":     previous,
		"new_quantity": input.NewQuantity,
		"updated_by":   input.UpdatedBy,
	})

	if variant.StockQuantity <= LowStockThreshold {
		s.notifications.NotifyLowStock(product, variant)
	}

	return variant, nil
}

func (s *inventoryService) Logs(productID uint, limit, offset int) ([]model.InventoryLog, int64, error) {
	return s.logRepo.FindAll(productID, limit, offset)
}
