package service

import (
	"errors"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrVariantRequired = errors.New("product requires at least one variant")
)

type CreateProductInput struct {
	Name        string
	Description string
	Category    model.ProductCategory
	ImageURL    string
	Variants    []VariantInput
}

type VariantInput struct {
	Name          string
	Price         float64
	StockQuantity int
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *model.ProductCategory
	ImageURL    *string
	IsAvailable *bool
	Variants    []VariantInput
}

type ProductService interface {
	List(category string) ([]model.Product, error)
	GetByID(id uint) (*model.Product, error)
	Create(input CreateProductInput) (*model.Product, error)
	Update(id uint, input UpdateProductInput) (*model.Product, error)
	Delete(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) List(category string) ([]model.Product, error) {
	if category != "" && !model.ValidCategory(model.ProductCategory(category)) {
		return nil, ErrInvalidCategory
	}
	return s.productRepo.FindAll(category)
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Create(input CreateProductInput) (*model.Product, error) {
	if !model.ValidCategory(input.Category) {
		return nil, ErrInvalidCategory
	}
	if len(input.Variants) == 0 {
		return nil, ErrVariantRequired
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		IsAvailable: true,
	}
	for _, v := range input.Variants {
		variant := model.Variant{Name: v.Name, Price: v.Price}
		variant.SetStock(v.StockQuantity)
		product.Variants = append(product.Variants, variant)
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"category":   product.Category,
		"variants":   len(product.Variants),
	})
	return product, nil
}

func (s *productService) Update(id uint, input UpdateProductInput) (*model.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		if !model.ValidCategory(*input.Category) {
			return nil, ErrInvalidCategory
		}
		product.Category = *input.Category
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	if input.Variants != nil {
		variants := make([]model.Variant, 0, len(input.Variants))
		for _, v := range input.Variants {
			variant := model.Variant{Name: v.Name, Price: v.Price}
			variant.SetStock(v.StockQuantity)
			variants = append(variants, variant)
		}
		if err := s.productRepo.ReplaceVariants(product.ID, variants); err != nil {
			return nil, err
		}
	}

	return s.GetByID(id)
}

func (s *productService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	logger.Info("Product deleted", map[string]interface{}{"product_id": id})
	return nil
}
