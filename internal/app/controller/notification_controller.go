package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/internal/middleware"
	"github.com/bitebakers/brownie-backend/internal/websocket"
	"github.com/bitebakers/brownie-backend/pkg/logger"
)

type NotificationController struct {
	notificationService service.NotificationService
	hub                 *websocket.Hub
	upgrader            gorillaws.Upgrader
}

func NewNotificationController(notificationService service.NotificationService, hub *websocket.Hub) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		hub:                 hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS layer; the upgrade itself
			// is already behind admin auth.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GetNotifications lists stored notifications
// GET /api/v1/admin/notifications
func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	limit, offset := paginationParams(c)

	notifications, total, err := ctrl.notificationService.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	unread, err := ctrl.notificationService.UnreadCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"unread_count":  unread,
	})
}

// MarkAsRead marks one notification as read
// PATCH /api/v1/admin/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.notificationService.MarkAsRead(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead marks every notification as read
// PATCH /api/v1/admin/notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *gin.Context) {
	if err := ctrl.notificationService.MarkAllAsRead(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// ClearAll deletes all stored notifications
// DELETE /api/v1/admin/notifications
func (ctrl *NotificationController) ClearAll(c *gin.Context) {
	if err := ctrl.notificationService.ClearAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}

// Stream upgrades the connection and registers the admin session for
// live pushes
// GET /api/v1/admin/notifications/stream
func (ctrl *NotificationController) Stream(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := &websocket.Client{
		Hub:    ctrl.hub,
		Conn:   &websocket.Conn{Conn: conn},
		UserID: userID,
		Send:   make(chan []byte, 64),
	}
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
