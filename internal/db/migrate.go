package db

import (
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.Variant{},
		&model.Order{},
		&model.OrderItem{},
		&model.Coupon{},
		&model.CouponUsage{},
		&model.Feedback{},
		&model.ProductFeedback{},
		&model.InventoryLog{},
		&model.Notification{},
		&model.Contact{},
		&model.HomeContent{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
