package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/internal/middleware"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact stores a storefront contact message
// POST /api/v1/contact
func (ctrl *ContactController) SubmitContact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, subject and message are required"})
		return
	}

	contact, err := ctrl.contactService.Submit(req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		log.Error("Failed to store contact message", err, map[string]interface{}{"email": req.Email})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thanks for reaching out, we'll get back to you soon",
		"contact": contact,
	})
}

// GetContacts lists contact messages for the back office
// GET /api/v1/admin/contacts
func (ctrl *ContactController) GetContacts(c *gin.Context) {
	limit, offset := paginationParams(c)

	contacts, total, err := ctrl.contactService.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": contacts,
		"total":    total,
	})
}

// DeleteContact removes a handled contact message
// DELETE /api/v1/admin/contacts/:id
func (ctrl *ContactController) DeleteContact(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.contactService.Delete(id); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact message deleted"})
}
