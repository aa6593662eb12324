package service

import (
	"errors"
	"strings"
	"time"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

// Coupon rejection errors carry the exact customer-facing message; the
// controllers surface err.Error() directly.
var (
	ErrCouponNotFound     = errors.New("Invalid coupon code")
	ErrCouponAlreadyUsed  = errors.New("Coupon has already been used")
	ErrCouponInactive     = errors.New("This coupon is no longer active")
	ErrCouponExpired      = errors.New("This coupon has expired")
	ErrCouponExhausted    = errors.New("Coupon has reached maximum usage")
	ErrCouponNewUsersOnly = errors.New("This coupon is for new customers only")

	ErrInvalidCouponExpiry = errors.New("invalid coupon expiry date")
)

func parseExpiry(raw string) (*time.Time, error) {
	expiresAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, ErrInvalidCouponExpiry
	}
	return &expiresAt, nil
}

type CreateCouponInput struct {
	Code         string
	Type         model.CouponType
	Value        float64
	MaxUses      *int
	ExpiresAt    *string // RFC3339, optional
	NewUsersOnly bool
}

type UpdateCouponInput struct {
	Value        *float64
	MaxUses      *int
	IsActive     *bool
	NewUsersOnly *bool
}

type CouponService interface {
	// Validate runs the full redemption rule chain for the given
	// shopper. A nil userID means a guest checkout.
	Validate(code string, userID *uint) (*model.Coupon, error)

	Create(input CreateCouponInput) (*model.Coupon, error)
	List() ([]model.Coupon, error)
	Update(id uint, input UpdateCouponInput) (*model.Coupon, error)
	Delete(id uint) error
	DeactivateExpired() (int64, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
	orderRepo  repository.OrderRepository
}

func NewCouponService(couponRepo repository.CouponRepository, orderRepo repository.OrderRepository) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		orderRepo:  orderRepo,
	}
}

// Validate checks redemption rules in a fixed order: existence, prior
// use by this shopper, active flag, expiry, usage cap, then the
// new-customers restriction. The first failing rule wins.
func (s *couponService) Validate(code string, userID *uint) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if userID != nil {
		used, err := s.couponRepo.HasUsage(coupon.ID, *userID)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, ErrCouponAlreadyUsed
		}
	}

	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if coupon.Expired() {
		return nil, ErrCouponExpired
	}
	if coupon.Exhausted() {
		return nil, ErrCouponExhausted
	}

	if coupon.NewUsersOnly {
		if userID == nil {
			return nil, ErrCouponNewUsersOnly
		}
		priorOrders, err := s.orderRepo.CountByUserID(*userID)
		if err != nil {
			return nil, err
		}
		if priorOrders > 0 {
			return nil, ErrCouponNewUsersOnly
		}
	}

	return coupon, nil
}

func (s *couponService) Create(input CreateCouponInput) (*model.Coupon, error) {
	coupon := &model.Coupon{
		Code:         strings.ToUpper(strings.TrimSpace(input.Code)),
		Type:         input.Type,
		Value:        input.Value,
		MaxUses:      input.MaxUses,
		IsActive:     true,
		NewUsersOnly: input.NewUsersOnly,
	}
	if input.ExpiresAt != nil && *input.ExpiresAt != "" {
		expiresAt, err := parseExpiry(*input.ExpiresAt)
		if err != nil {
			return nil, err
		}
		coupon.ExpiresAt = expiresAt
	}

	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	logger.Info("Coupon created", map[string]interface{}{
		"coupon_id": coupon.ID,
		"code":      coupon.Code,
		"type":      coupon.Type,
	})
	return coupon, nil
}

func (s *couponService) List() ([]model.Coupon, error) {
	return s.couponRepo.FindAll()
}

func (s *couponService) Update(id uint, input UpdateCouponInput) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if input.Value != nil {
		coupon.Value = *input.Value
	}
	if input.MaxUses != nil {
		coupon.MaxUses = input.MaxUses
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if input.NewUsersOnly != nil {
		coupon.NewUsersOnly = *input.NewUsersOnly
	}

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) Delete(id uint) error {
	if _, err := s.couponRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCouponNotFound
		}
		return err
	}
	return s.couponRepo.Delete(id)
}

// DeactivateExpired is invoked by the daily scheduler sweep.
func (s *couponService) DeactivateExpired() (int64, error) {
	count, err := s.couponRepo.DeactivateExpired()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Deactivated expired coupons", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}
