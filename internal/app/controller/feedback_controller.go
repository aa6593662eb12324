package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/internal/middleware"
)

type FeedbackController struct {
	feedbackService service.FeedbackService
}

func NewFeedbackController(feedbackService service.FeedbackService) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
	}
}

type FeedbackEntryRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type SubmitFeedbackRequest struct {
	OrderID uint                   `json:"order_id" binding:"required"`
	Entries []FeedbackEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

type SetDisplayedRequest struct {
	IsDisplayed *bool `json:"is_displayed" binding:"required"`
}

// SubmitFeedback records one feedback per order
// POST /api/v1/feedbacks
func (ctrl *FeedbackController) SubmitFeedback(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	entries := make([]service.FeedbackEntryInput, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, service.FeedbackEntryInput{
			ProductID: entry.ProductID,
			Rating:    entry.Rating,
			Comment:   entry.Comment,
		})
	}

	feedback, err := ctrl.feedbackService.Submit(req.OrderID, userID, entries)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrFeedbackOrderMismatch):
			c.JSON(http.StatusForbidden, gin.H{"error": "Order does not belong to this user"})
		case errors.Is(err, service.ErrFeedbackAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Feedback has already been submitted for this order"})
		case errors.Is(err, service.ErrInvalidRating), errors.Is(err, service.ErrFeedbackEmptyEntries):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error("Failed to submit feedback", err, map[string]interface{}{
				"order_id": req.OrderID,
				"user_id":  userID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"feedback": feedback})
}

// GetProductFeedbacks returns the displayed entries for a product
// GET /api/v1/products/:id/feedbacks
func (ctrl *FeedbackController) GetProductFeedbacks(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entries, err := ctrl.feedbackService.ListDisplayedForProduct(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedbacks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedbacks": entries,
		"count":     len(entries),
	})
}

// GetAllFeedbacks lists submissions for the back office
// GET /api/v1/admin/feedbacks
func (ctrl *FeedbackController) GetAllFeedbacks(c *gin.Context) {
	limit, offset := paginationParams(c)

	feedbacks, total, err := ctrl.feedbackService.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedbacks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedbacks": feedbacks,
		"total":     total,
	})
}

// SetEntryDisplayed toggles an entry on the storefront, capped at
// three displayed entries per product
// PATCH /api/v1/admin/feedbacks/entries/:id/display
func (ctrl *FeedbackController) SetEntryDisplayed(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SetDisplayedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_displayed is required"})
		return
	}

	entry, err := ctrl.feedbackService.SetEntryDisplayed(id, *req.IsDisplayed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFeedbackNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback entry not found"})
		case errors.Is(err, service.ErrDisplayLimit):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update feedback entry"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry})
}
