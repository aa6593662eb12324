package service

import (
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"github.com/lib/pq"
)

type UpdateHomeContentInput struct {
	AppName      *string
	HeroTitle    *string
	HeroSubtitle *string
	AboutText    *string
	ContactText  *string
	MenuText     *string
	Values       []string
}

type ContentService interface {
	GetHome() (*model.HomeContent, error)
	UpdateHome(input UpdateHomeContentInput) (*model.HomeContent, error)
}

type contentService struct {
	contentRepo repository.HomeContentRepository
}

func NewContentService(contentRepo repository.HomeContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func (s *contentService) GetHome() (*model.HomeContent, error) {
	return s.contentRepo.GetOrCreate()
}

func (s *contentService) UpdateHome(input UpdateHomeContentInput) (*model.HomeContent, error) {
	content, err := s.contentRepo.GetOrCreate()
	if err != nil {
		return nil, err
	}

	if input.AppName != nil {
		content.AppName = *input.AppName
	}
	if input.HeroTitle != nil {
		content.HeroTitle = *input.HeroTitle
	}
	if input.HeroSubtitle != nil {
		content.HeroSubtitle = *input.HeroSubtitle
	}
	if input.AboutText != nil {
		content.AboutText = *input.AboutText
	}
	if input.ContactText != nil {
		content.ContactText = *input.ContactText
	}
	if input.MenuText != nil {
		content.MenuText = *input.MenuText
	}
	if input.Values != nil {
		content.Values = pq.StringArray(input.Values)
	}

	if err := s.contentRepo.Update(content); err != nil {
		return nil, err
	}
	logger.Info("Home content updated", nil)
	return content, nil
}
