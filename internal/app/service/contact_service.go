package service

import (
	"errors"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact message not found")

type ContactService interface {
	Submit(name, email, subject, message string) (*model.Contact, error)
	List(limit, offset int) ([]model.Contact, int64, error)
	Delete(id uint) error
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(name, email, subject, message string) (*model.Contact, error) {
	contact := &model.Contact{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}
	logger.Info("Contact message received", map[string]interface{}{
		"contact_id": contact.ID,
		"email":      contact.Email,
	})
	return contact, nil
}

func (s *contactService) List(limit, offset int) ([]model.Contact, int64, error) {
	return s.contactRepo.FindAll(limit, offset)
}

func (s *contactService) Delete(id uint) error {
	if err := s.contactRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}
