package repository

import (
	"time"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	FindByID(id uint) (*model.Coupon, error)
	FindByCode(code string) (*model.Coupon, error)
	FindAll() ([]model.Coupon, error)
	Update(coupon *model.Coupon) error
	Delete(id uint) error
	HasUsage(couponID, userID uint) (bool, error)
	DeactivateExpired() (int64, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	if err := r.db.Create(coupon).Error; err != nil {
		logger.Error("Failed to create coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindByID(id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindAll() ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := r.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		logger.Error("Failed to list coupons in database", err, nil)
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) Update(coupon *model.Coupon) error {
	if err := r.db.Save(coupon).Error; err != nil {
		logger.Error("Failed to update coupon in database", err, map[string]interface{}{
			"coupon_id": coupon.ID,
		})
		return err
	}
	return nil
}

func (r *couponRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Coupon{}, id).Error; err != nil {
		logger.Error("Failed to delete coupon in database", err, map[string]interface{}{
			"coupon_id": id,
		})
		return err
	}
	return nil
}

func (r *couponRepository) HasUsage(couponID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeactivateExpired flips is_active off for coupons whose expiry has
// passed. Run from the scheduler.
func (r *couponRepository) DeactivateExpired() (int64, error) {
	result := r.db.Model(&model.Coupon{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, time.Now()).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired coupons", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
