package repository

import (
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindAll(category string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	FindVariant(productID uint, variantName string) (*model.Variant, error)
	UpdateVariant(variant *model.Variant) error
	ReplaceVariants(productID uint, variants []model.Variant) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Variants").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindAll(category string) ([]model.Product, error) {
	var products []model.Product
	query := r.db.Preload("Variants").Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to list products in database", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Variant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

func (r *productRepository) FindVariant(productID uint, variantName string) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.Where("product_id = ? AND name = ?", productID, variantName).
		First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *productRepository) UpdateVariant(variant *model.Variant) error {
	if err := r.db.Save(variant).Error; err != nil {
		logger.Error("Failed to update variant in database", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	return nil
}

// ReplaceVariants swaps a product's variant list wholesale, the way the
// admin product editor submits it.
func (r *productRepository) ReplaceVariants(productID uint, variants []model.Variant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.Variant{}).Error; err != nil {
			return err
		}
		for i := range variants {
			variants[i].ID = 0
			variants[i].ProductID = productID
			variants[i].SetStock(variants[i].StockQuantity)
		}
		if len(variants) == 0 {
			return nil
		}
		return tx.Create(&variants).Error
	})
}
