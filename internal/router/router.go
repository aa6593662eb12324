package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/internal/app/controller"
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	productController      *controller.ProductController
	orderController        *controller.OrderController
	couponController       *controller.CouponController
	feedbackController     *controller.FeedbackController
	inventoryController    *controller.InventoryController
	notificationController *controller.NotificationController
	contactController      *controller.ContactController
	contentController      *controller.ContentController
	paymentController      *controller.PaymentController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	orderController *controller.OrderController,
	couponController *controller.CouponController,
	feedbackController *controller.FeedbackController,
	inventoryController *controller.InventoryController,
	notificationController *controller.NotificationController,
	contactController *controller.ContactController,
	contentController *controller.ContentController,
	paymentController *controller.PaymentController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		productController:      productController,
		orderController:        orderController,
		couponController:       couponController,
		feedbackController:     feedbackController,
		inventoryController:    inventoryController,
		notificationController: notificationController,
		contactController:      contactController,
		contentController:      contentController,
		paymentController:      paymentController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "BiteBakers API is running",
		})
	})

	admin := string(model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/verify", r.authController.VerifyEmail)
			auth.POST("/resend-verification", r.authController.ResendVerification)
			auth.POST("/login", r.authController.Login)
			auth.POST("/google", r.authController.GoogleSignIn)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.GET("/:id/feedbacks", r.feedbackController.GetProductFeedbacks)
		}

		v1.GET("/content/home", r.contentController.GetHomeContent)
		v1.POST("/contact", r.contactController.SubmitContact)

		orders := v1.Group("/orders")
		{
			orders.GET("/track", r.orderController.TrackOrder)
			orders.POST("/guest", r.orderController.CreateOrder)
			orders.POST("", r.authMiddleware.Authenticate(), r.orderController.CreateOrder)
			orders.GET("", r.authMiddleware.Authenticate(), r.orderController.GetOrders)
			orders.GET("/:id", r.authMiddleware.Authenticate(), r.orderController.GetOrderByID)
		}

		v1.POST("/coupons/validate",
			r.authMiddleware.OptionalAuthenticate(),
			r.couponController.ValidateCoupon)

		v1.POST("/feedbacks",
			r.authMiddleware.Authenticate(),
			r.feedbackController.SubmitFeedback)

		v1.POST("/payments/source", r.paymentController.CreateSource)

		adminGroup := v1.Group("/admin",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(admin))
		{
			adminGroup.POST("/products", r.productController.CreateProduct)
			adminGroup.PUT("/products/:id", r.productController.UpdateProduct)
			adminGroup.DELETE("/products/:id", r.productController.DeleteProduct)

			adminGroup.GET("/orders", r.orderController.GetAllOrders)
			adminGroup.PATCH("/orders/:id/status", r.orderController.UpdateOrderStatus)

			adminGroup.PATCH("/inventory", r.inventoryController.UpdateStock)
			adminGroup.GET("/inventory/logs", r.inventoryController.GetInventoryLogs)

			adminGroup.POST("/coupons", r.couponController.CreateCoupon)
			adminGroup.GET("/coupons", r.couponController.GetCoupons)
			adminGroup.PATCH("/coupons/:id", r.couponController.UpdateCoupon)
			adminGroup.DELETE("/coupons/:id", r.couponController.DeleteCoupon)

			adminGroup.GET("/feedbacks", r.feedbackController.GetAllFeedbacks)
			adminGroup.PATCH("/feedbacks/entries/:id/display", r.feedbackController.SetEntryDisplayed)

			adminGroup.GET("/contacts", r.contactController.GetContacts)
			adminGroup.DELETE("/contacts/:id", r.contactController.DeleteContact)

			adminGroup.GET("/users", r.authController.ListUsers)
			adminGroup.PATCH("/users/:id/role", r.authController.UpdateUserRole)
			adminGroup.DELETE("/users/:id", r.authController.DeleteUser)

			adminGroup.PUT("/content/home", r.contentController.UpdateHomeContent)

			adminGroup.GET("/notifications", r.notificationController.GetNotifications)
			adminGroup.PATCH("/notifications/read-all", r.notificationController.MarkAllAsRead)
			adminGroup.PATCH("/notifications/:id/read", r.notificationController.MarkAsRead)
			adminGroup.DELETE("/notifications", r.notificationController.ClearAll)
			adminGroup.GET("/notifications/stream", r.notificationController.Stream)

			adminGroup.POST("/uploads/presign", r.uploadController.PresignUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
