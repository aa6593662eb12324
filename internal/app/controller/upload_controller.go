package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/internal/middleware"
	"github.com/bitebakers/brownie-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// PresignUpload issues a presigned PUT URL for a product image
// POST /api/v1/admin/uploads/presign
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename, content_type and size are required"})
		return
	}

	upload, err := ctrl.storage.PresignUpload(c.Request.Context(), req.Filename, req.ContentType, req.Size)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the maximum upload size"})
		case errors.Is(err, storage.ErrInvalidContentType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPEG, PNG and WebP images can be uploaded"})
		default:
			log.Error("Failed to presign upload", err, map[string]interface{}{
				"filename": req.Filename,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		}
		return
	}

	c.JSON(http.StatusOK, upload)
}
