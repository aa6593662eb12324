package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/internal/middleware"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{
		couponService: couponService,
	}
}

type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type CreateCouponRequest struct {
	Code         string  `json:"code" binding:"required"`
	Type         string  `json:"type" binding:"required,oneof=fixed_amount free_product"`
	Value        float64 `json:"value" binding:"required,gt=0"`
	MaxUses      *int    `json:"max_uses" binding:"omitempty,gt=0"`
	ExpiresAt    *string `json:"expires_at"`
	NewUsersOnly bool    `json:"new_users_only"`
}

type UpdateCouponRequest struct {
	Value        *float64 `json:"value" binding:"omitempty,gt=0"`
	MaxUses      *int     `json:"max_uses" binding:"omitempty,gt=0"`
	IsActive     *bool    `json:"is_active"`
	NewUsersOnly *bool    `json:"new_users_only"`
}

func isCouponRejection(err error) bool {
	return errors.Is(err, service.ErrCouponNotFound) ||
		errors.Is(err, service.ErrCouponAlreadyUsed) ||
		errors.Is(err, service.ErrCouponInactive) ||
		errors.Is(err, service.ErrCouponExpired) ||
		errors.Is(err, service.ErrCouponExhausted) ||
		errors.Is(err, service.ErrCouponNewUsersOnly)
}

// ValidateCoupon checks a code before checkout. Works for guests too;
// signed-in shoppers additionally get the once-per-user check.
// POST /api/v1/coupons/validate
func (ctrl *CouponController) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Coupon code is required"})
		return
	}

	var userID *uint
	if id, exists := middleware.GetUserID(c); exists {
		userID = &id
	}

	coupon, err := ctrl.couponService.Validate(req.Code, userID)
	if err != nil {
		if isCouponRejection(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"valid":   false,
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":  true,
		"coupon": coupon,
	})
}

// CreateCoupon adds a coupon; codes are stored uppercase
// POST /api/v1/admin/coupons
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	coupon, err := ctrl.couponService.Create(service.CreateCouponInput{
		Code:         req.Code,
		Type:         model.CouponType(req.Type),
		Value:        req.Value,
		MaxUses:      req.MaxUses,
		ExpiresAt:    req.ExpiresAt,
		NewUsersOnly: req.NewUsersOnly,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCouponExpiry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at must be an RFC3339 timestamp"})
			return
		}
		log.Error("Failed to create coupon", err, map[string]interface{}{"code": req.Code})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
}

// GetCoupons lists all coupons for the back office
// GET /api/v1/admin/coupons
func (ctrl *CouponController) GetCoupons(c *gin.Context) {
	coupons, err := ctrl.couponService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupons": coupons,
		"count":   len(coupons),
	})
}

// UpdateCoupon edits coupon limits and flags
// PATCH /api/v1/admin/coupons/:id
func (ctrl *CouponController) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	coupon, err := ctrl.couponService.Update(id, service.UpdateCouponInput{
		Value:        req.Value,
		MaxUses:      req.MaxUses,
		IsActive:     req.IsActive,
		NewUsersOnly: req.NewUsersOnly,
	})
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coupon": coupon})
}

// DeleteCoupon removes a coupon
// DELETE /api/v1/admin/coupons/:id
func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.couponService.Delete(id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}
