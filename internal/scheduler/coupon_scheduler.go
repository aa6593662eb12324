package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/pkg/logger"
)

// CouponScheduler deactivates expired coupons once a day so the admin
// list reflects reality without waiting for a validation attempt.
type CouponScheduler struct {
	cron          *cron.Cron
	couponService service.CouponService
}

func NewCouponScheduler(couponService service.CouponService) *CouponScheduler {
	return &CouponScheduler{
		cron:          cron.New(),
		couponService: couponService,
	}
}

func (s *CouponScheduler) Start() error {
	// Daily at midnight
	_, err := s.cron.AddFunc("0 0 * * *", func() {
		logger.Info("Starting scheduled coupon expiry sweep", nil)

		count, err := s.couponService.DeactivateExpired()
		if err != nil {
			logger.Error("Coupon expiry sweep failed", err, nil)
			return
		}

		logger.Info("Coupon expiry sweep completed", map[string]interface{}{
			"deactivated": count,
		})
	})
	if err != nil {
		logger.Error("Failed to register coupon expiry sweep", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Coupon scheduler started (daily at midnight)", nil)
	return nil
}

func (s *CouponScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Coupon scheduler stopped", nil)
}
