package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/internal/middleware"
)

type InventoryController struct {
	inventoryService service.InventoryService
}

func NewInventoryController(inventoryService service.InventoryService) *InventoryController {
	return &InventoryController{
		inventoryService: inventoryService,
	}
}

type UpdateStockRequest struct {
	ProductID   uint   `json:"product_id" binding:"required"`
	VariantName string `json:"variant_name" binding:"required"`
	NewQuantity *int   `json:"new_quantity" binding:"required,min=0"`
	Reason      string `json:"reason"`
}

// UpdateStock applies a manual stock adjustment with an audit log row
// PATCH /api/v1/admin/inventory
func (ctrl *InventoryController) UpdateStock(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	variant, err := ctrl.inventoryService.UpdateStock(service.UpdateStockInput{
		ProductID:   req.ProductID,
		VariantName: req.VariantName,
		NewQuantity: *req.NewQuantity,
		Reason:      req.Reason,
		UpdatedBy:   adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrVariantNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		case errors.Is(err, service.ErrNegativeQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock quantity cannot be negative"})
		default:
			log.Error("Failed to update stock", err, map[string]interface{}{
				"product_id":   req.ProductID,
				"variant_name": req.VariantName,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// GetInventoryLogs returns the stock audit trail
// GET /api/v1/admin/inventory/logs
func (ctrl *InventoryController) GetInventoryLogs(c *gin.Context) {
	limit, offset := paginationParams(c)

	var productID uint
	if raw := c.Query("product_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		productID = uint(parsed)
	}

	logs, total, err := ctrl.inventoryService.Logs(productID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": total,
	})
}
