package repository

import (
	"errors"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

type HomeContentRepository interface {
	GetOrCreate() (*model.HomeContent, error)
	Update(content *model.HomeContent) error
}

type homeContentRepository struct {
	db *gorm.DB
}

func NewHomeContentRepository(db *gorm.DB) HomeContentRepository {
	return &homeContentRepository{db: db}
}

// GetOrCreate returns the single home content row, seeding the default
// copy on first access.
func (r *homeContentRepository) GetOrCreate() (*model.HomeContent, error) {
	var content model.HomeContent
	err := r.db.First(&content).Error
	if err == nil {
		return &content, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seeded := model.DefaultHomeContent()
	if err := r.db.Create(seeded).Error; err != nil {
		logger.Error("Failed to seed home content in database", err, nil)
		return nil, err
	}
	return seeded, nil
}

func (r *homeContentRepository) Update(content *model.HomeContent) error {
	if err := r.db.Save(content).Error; err != nil {
		logger.Error("Failed to update home content in database", err, nil)
		return err
	}
	return nil
}
