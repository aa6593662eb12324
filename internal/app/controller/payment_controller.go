package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/internal/middleware"
	"github.com/bitebakers/brownie-backend/internal/payment"
)

type PaymentController struct {
	paymentClient *payment.Client
}

func NewPaymentController(paymentClient *payment.Client) *PaymentController {
	return &PaymentController{
		paymentClient: paymentClient,
	}
}

type CreateSourceRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Method      string  `json:"method" binding:"required"`
	OrderNumber string  `json:"order_number" binding:"required"`
}

// CreateSource registers a payment with the provider and returns the
// shopper's redirect URL
// POST /api/v1/payments/source
func (ctrl *PaymentController) CreateSource(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount, method and order_number are required"})
		return
	}

	source, err := ctrl.paymentClient.CreateSource(c.Request.Context(), payment.CreateSourceInput{
		Amount:      req.Amount,
		Method:      req.Method,
		OrderNumber: req.OrderNumber,
	})
	if err != nil {
		if errors.Is(err, payment.ErrSourceCreationFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider is unavailable, please try again"})
			return
		}
		log.Error("Failed to create payment source", err, map[string]interface{}{
			"order_number": req.OrderNumber,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment source"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"source": source})
}
