package service

import (
	"errors"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound      = errors.New("feedback not found")
	ErrFeedbackAlreadyExists = errors.New("feedback has already been submitted for this order")
	ErrFeedbackOrderMismatch = errors.New("order does not belong to this user")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrFeedbackEmptyEntries  = errors.New("feedback must contain at least one entry")

	// ErrDisplayLimit carries the exact admin-facing message.
	ErrDisplayLimit = errors.New("Maximum of 3 feedbacks can be displayed per product")
)

type FeedbackEntryInput struct {
	ProductID uint
	Rating    int
	Comment   string
}

type FeedbackService interface {
	Submit(orderID, userID uint, entries []FeedbackEntryInput) (*model.Feedback, error)
	List(limit, offset int) ([]model.Feedback, int64, error)
	ListDisplayedForProduct(productID uint) ([]model.ProductFeedback, error)
	SetEntryDisplayed(entryID uint, displayed bool) (*model.ProductFeedback, error)
}

type feedbackService struct {
	feedbackRepo  repository.FeedbackRepository
	orderRepo     repository.OrderRepository
	notifications NotificationService
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	orderRepo repository.OrderRepository,
	notifications NotificationService,
) FeedbackService {
	return &feedbackService{
		feedbackRepo:  feedbackRepo,
		orderRepo:     orderRepo,
		notifications: notifications,
	}
}

// Submit records one feedback per order, with a rated entry per product.
func (s *feedbackService) Submit(orderID, userID uint, entries []FeedbackEntryInput) (*model.Feedback, error) {
	if len(entries) == 0 {
		return nil, ErrFeedbackEmptyEntries
	}
	for _, entry := range entries {
		if entry.Rating < 1 || entry.Rating > 5 {
			return nil, ErrInvalidRating
		}
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, ErrFeedbackOrderMismatch
	}

	if _, err := s.feedbackRepo.FindByOrderID(orderID); err == nil {
		return nil, ErrFeedbackAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	feedback := &model.Feedback{OrderID: orderID}
	for _, entry := range entries {
		feedback.Entries = append(feedback.Entries, model.ProductFeedback{
			ProductID: entry.ProductID,
			Rating:    entry.Rating,
			Comment:   entry.Comment,
		})
	}

	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}

	logger.Info("Feedback submitted", map[string]interface{}{
		"feedback_id": feedback.ID,
		"order_id":    orderID,
		"entries":     len(feedback.Entries),
	})
	s.notifications.NotifyNewFeedback(order.OrderNumber, len(feedback.Entries))

	return feedback, nil
}

func (s *feedbackService) List(limit, offset int) ([]model.Feedback, int64, error) {
	return s.feedbackRepo.FindAll(limit, offset)
}

func (s *feedbackService) ListDisplayedForProduct(productID uint) ([]model.ProductFeedback, error) {
	return s.feedbackRepo.FindDisplayedByProduct(productID)
}

// SetEntryDisplayed toggles whether an entry shows on the storefront.
// At most three entries may be displayed per product; hiding an entry
// is always allowed.
func (s *feedbackService) SetEntryDisplayed(entryID uint, displayed bool) (*model.ProductFeedback, error) {
	entry, err := s.feedbackRepo.FindEntry(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	if displayed {
		displayedCount, err := s.feedbackRepo.CountDisplayedForProduct(entry.ProductID, entry.ID)
		if err != nil {
			return nil, err
		}
		if displayedCount >= model.MaxDisplayedPerProduct {
			return nil, ErrDisplayLimit
		}
	}

	entry.IsDisplayed = displayed
	if err := s.feedbackRepo.UpdateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
