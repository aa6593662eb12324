package repository

import (
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(contact *model.Contact) error
	FindAll(limit, offset int) ([]model.Contact, int64, error)
	Delete(id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	if err := r.db.Create(contact).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": contact.Email,
		})
		return err
	}
	return nil
}

func (r *contactRepository) FindAll(limit, offset int) ([]model.Contact, int64, error) {
	var contacts []model.Contact
	var total int64

	if err := r.db.Model(&model.Contact{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&contacts).Error; err != nil {
		logger.Error("Failed to list contact messages in database", err, nil)
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *contactRepository) Delete(id uint) error {
	result := r.db.Delete(&model.Contact{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete contact message in database", result.Error, map[string]interface{}{
			"contact_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
