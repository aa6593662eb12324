package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/internal/middleware"
)

type ContentController struct {
	contentService service.ContentService
}

func NewContentController(contentService service.ContentService) *ContentController {
	return &ContentController{
		contentService: contentService,
	}
}

type UpdateHomeContentRequest struct {
	AppName      *string  `json:"app_name"`
	HeroTitle    *string  `json:"hero_title"`
	HeroSubtitle *string  `json:"hero_subtitle"`
	AboutText    *string  `json:"about_text"`
	ContactText  *string  `json:"contact_text"`
	MenuText     *string  `json:"menu_text"`
	Values       []string `json:"values"`
}

// GetHomeContent returns the storefront copy, seeding defaults on
// first access
// GET /api/v1/content/home
func (ctrl *ContentController) GetHomeContent(c *gin.Context) {
	content, err := ctrl.contentService.GetHome()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch home content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// UpdateHomeContent edits the storefront copy
// PUT /api/v1/admin/content/home
func (ctrl *ContentController) UpdateHomeContent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateHomeContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	content, err := ctrl.contentService.UpdateHome(service.UpdateHomeContentInput{
		AppName:      req.AppName,
		HeroTitle:    req.HeroTitle,
		HeroSubtitle: req.HeroSubtitle,
		AboutText:    req.AboutText,
		ContactText:  req.ContactText,
		MenuText:     req.MenuText,
		Values:       req.Values,
	})
	if err != nil {
		log.Error("Failed to update home content", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update home content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}
