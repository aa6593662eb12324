package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/service"
	"github.com/bitebakers/brownie-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type OrderItemRequest struct {
	ProductID   uint   `json:"product_id" binding:"required"`
	VariantName string `json:"variant_name" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	GuestEmail    string             `json:"guest_email" binding:"omitempty,email"`
	CouponCode    string             `json:"coupon_code"`
	PaymentMethod string             `json:"payment_method"`
	DeliveryNote  string             `json:"delivery_note"`
}

type UpdateOrderStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	DeliveryCourier string `json:"delivery_courier"`
	DeliveryNote    string `json:"delivery_note"`
}

// CreateOrder places an order. Signed-in shoppers get the order
// attached to their account; the guest route reaches the same handler
// without auth and must carry guest_email.
// POST /api/v1/orders
// POST /api/v1/orders/guest
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	input := service.CreateOrderInput{
		GuestEmail:    req.GuestEmail,
		CouponCode:    req.CouponCode,
		PaymentMethod: req.PaymentMethod,
		DeliveryNote:  req.DeliveryNote,
	}
	if userID, exists := middleware.GetUserID(c); exists {
		input.UserID = &userID
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID:   item.ProductID,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
		})
	}

	order, err := ctrl.orderService.CreateOrder(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder),
			errors.Is(err, service.ErrGuestEmailRequired),
			errors.Is(err, service.ErrOrderVariantInvalid),
			errors.Is(err, service.ErrInsufficientStock),
			errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, service.ErrCouponNotFound),
			errors.Is(err, service.ErrCouponAlreadyUsed),
			errors.Is(err, service.ErrCouponInactive),
			errors.Is(err, service.ErrCouponExpired),
			errors.Is(err, service.ErrCouponExhausted),
			errors.Is(err, service.ErrCouponNewUsersOnly):
			// Coupon rejections surface their exact message
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			log.Error("Failed to create order", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrders returns the authenticated shopper's order history
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := ctrl.orderService.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one order; shoppers may only read their own
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	role, _ := middleware.GetUserRole(c)
	if role != model.RoleAdmin {
		userID, _ := middleware.GetUserID(c)
		if order.UserID == nil || *order.UserID != userID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// TrackOrder lets guests look up an order by number and email
// GET /api/v1/orders/track
func (ctrl *OrderController) TrackOrder(c *gin.Context) {
	orderNumber := c.Query("order_number")
	email := c.Query("email")
	if orderNumber == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_number and email are required"})
		return
	}

	order, err := ctrl.orderService.TrackGuestOrder(orderNumber, email)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetAllOrders returns orders for the back office
// GET /api/v1/admin/orders
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	limit, offset := paginationParams(c)
	status := c.Query("status")

	orders, total, err := ctrl.orderService.ListAll(status, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrderStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// UpdateOrderStatus moves an order through its lifecycle
// PATCH /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	order, err := ctrl.orderService.UpdateStatus(id, service.UpdateOrderStatusInput{
		Status:          model.OrderStatus(req.Status),
		DeliveryCourier: req.DeliveryCourier,
		DeliveryNote:    req.DeliveryNote,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, service.ErrInvalidOrderStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		case errors.Is(err, service.ErrCourierRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A delivery courier is required to mark an order out for delivery"})
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{"order_id": id})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
