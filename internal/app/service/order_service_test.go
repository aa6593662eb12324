package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
)

type orderServiceFixture struct {
	orderService OrderService
	testDB       *gorm.DB
	mail         *stubMailer
	user         *model.User
	product      *model.Product
}

func setupOrderServiceTest(t *testing.T, inventoryCfg config.InventoryConfig) *orderServiceFixture {
	testDB := setupTestDB(t)

	orderRepo := repository.NewOrderRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	couponService := NewCouponService(couponRepo, orderRepo)
	notifications := newTestNotificationService(testDB)
	mail := &stubMailer{}

	orderService := NewOrderService(testDB, orderRepo, productRepo, couponService, notifications, mail, inventoryCfg)

	user := &model.User{
		Email:        "shopper@example.com",
		PasswordHash: "hash",
		Name:         "Test Shopper",
		Role:         model.RoleCustomer,
		IsVerified:   true,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:        "Fudge Brownie",
		Description: "Dense and chocolatey",
		Category:    model.CategoryClassic,
		IsAvailable: true,
	}
	boxOfSix := model.Variant{Name: "Box of 6", Price: 250}
	boxOfSix.SetStock(50)
	boxOfTwelve := model.Variant{Name: "Box of 12", Price: 450}
	boxOfTwelve.SetStock(25)
	product.Variants = []model.Variant{boxOfSix, boxOfTwelve}
	testDB.Create(product)

	return &orderServiceFixture{
		orderService: orderService,
		testDB:       testDB,
		mail:         mail,
		user:         user,
		product:      product,
	}
}

func defaultInventory() config.InventoryConfig {
	return config.InventoryConfig{AllowOversell: true}
}

func (f *orderServiceFixture) variant(name string) model.Variant {
	var variant model.Variant
	f.testDB.Where("product_id = ? AND name = ?", f.product.ID, name).First(&variant)
	return variant
}

func (f *orderServiceFixture) notifications(notificationType model.NotificationType) []model.Notification {
	var out []model.Notification
	f.testDB.Where("type = ?", notificationType).Find(&out)
	return out
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	order, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 2},
		},
		PaymentMethod: "gcash",
	})
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Contains(t, order.OrderNumber, "BB-")
	assert.Equal(t, float64(500), order.TotalAmount)
	assert.Equal(t, model.OrderStatusReceived, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Fudge Brownie", order.Items[0].ProductName)
	assert.Equal(t, "Box of 6", order.Items[0].VariantName)
	assert.Equal(t, float64(250), order.Items[0].Price)

	// Stock decremented
	variant := f.variant("Box of 6")
	assert.Equal(t, 48, variant.StockQuantity)
	assert.True(t, variant.InStock)

	// Checkout decrements never write audit rows
	var logCount int64
	f.testDB.Model(&model.InventoryLog{}).Count(&logCount)
	assert.Zero(t, logCount)

	// Admin notification persisted and confirmation email sent
	assert.Len(t, f.notifications(model.NotificationTypeOrder), 1)
	assert.Equal(t, 1, f.mail.sentCount())
	assert.Equal(t, "shopper@example.com", f.mail.lastMail().To)
}

func TestOrderService_CreateOrder_GuestRequiresEmail(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	_, err := f.orderService.CreateOrder(CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrGuestEmailRequired)
}

func TestOrderService_CreateOrder_EmptyItems(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	_, err := f.orderService.CreateOrder(CreateOrderInput{UserID: &f.user.ID})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestOrderService_CreateOrder_StockToZeroClearsInStock(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	_, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 12", Quantity: 25},
		},
	})
	require.NoError(t, err)

	variant := f.variant("Box of 12")
	assert.Equal(t, 0, variant.StockQuantity)
	assert.False(t, variant.InStock)
}

func TestOrderService_CreateOrder_OversellAllowedGoesNegative(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	_, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 12", Quantity: 30},
		},
	})
	require.NoError(t, err)

	variant := f.variant("Box of 12")
	assert.Equal(t, -5, variant.StockQuantity)
	assert.False(t, variant.InStock)
}

func TestOrderService_CreateOrder_OversellRejected(t *testing.T) {
	f := setupOrderServiceTest(t, config.InventoryConfig{AllowOversell: false})

	_, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 12", Quantity: 30},
		},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing committed
	variant := f.variant("Box of 12")
	assert.Equal(t, 25, variant.StockQuantity)
	var orderCount int64
	f.testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestOrderService_CreateOrder_UnknownVariant(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	_, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 99", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrOrderVariantInvalid)
}

func TestOrderService_CreateOrder_FixedAmountCoupon(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	coupon := &model.Coupon{Code: "SAVE50", Type: model.CouponTypeFixedAmount, Value: 50, IsActive: true}
	f.testDB.Create(coupon)

	order, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID:     &f.user.ID,
		CouponCode: "save50",
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(450), order.TotalAmount)
	assert.Equal(t, "SAVE50", order.CouponCode)
	assert.Equal(t, model.CouponTypeFixedAmount, order.CouponType)
	assert.Equal(t, float64(50), order.CouponValue)

	// Global counter and per-user usage row both updated
	var updated model.Coupon
	f.testDB.First(&updated, coupon.ID)
	assert.Equal(t, 1, updated.UsedCount)

	var usageCount int64
	f.testDB.Model(&model.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", coupon.ID, f.user.ID).
		Count(&usageCount)
	assert.Equal(t, int64(1), usageCount)
}

func TestOrderService_CreateOrder_FreeProductCoupon(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	coupon := &model.Coupon{Code: "FREEBIE", Type: model.CouponTypeFreeProduct, Value: 1, IsActive: true}
	f.testDB.Create(coupon)

	order, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID:     &f.user.ID,
		CouponCode: "FREEBIE",
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
			{ProductID: f.product.ID, VariantName: "Box of 12", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Cheapest unit comes off the total
	assert.Equal(t, float64(450), order.TotalAmount)
}

func TestOrderService_CreateOrder_GuestCouponSkipsUsageRow(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	maxUses := 1
	coupon := &model.Coupon{Code: "ONCE", Type: model.CouponTypeFixedAmount, Value: 10, MaxUses: &maxUses, IsActive: true}
	f.testDB.Create(coupon)

	_, err := f.orderService.CreateOrder(CreateOrderInput{
		GuestEmail: "guest@example.com",
		CouponCode: "ONCE",
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// Global counter incremented but no per-user row for guests
	var updated model.Coupon
	f.testDB.First(&updated, coupon.ID)
	assert.Equal(t, 1, updated.UsedCount)
	var usageCount int64
	f.testDB.Model(&model.CouponUsage{}).Count(&usageCount)
	assert.Zero(t, usageCount)

	// Cap still binds the next guest
	_, err = f.orderService.CreateOrder(CreateOrderInput{
		GuestEmail: "other@example.com",
		CouponCode: "ONCE",
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, "Coupon has reached maximum usage", err.Error())
}

func TestOrderService_CreateOrder_CouponAlreadyUsed(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	coupon := &model.Coupon{Code: "REPEAT", Type: model.CouponTypeFixedAmount, Value: 10, IsActive: true}
	f.testDB.Create(coupon)

	items := []OrderItemInput{{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1}}

	_, err := f.orderService.CreateOrder(CreateOrderInput{UserID: &f.user.ID, CouponCode: "REPEAT", Items: items})
	require.NoError(t, err)

	_, err = f.orderService.CreateOrder(CreateOrderInput{UserID: &f.user.ID, CouponCode: "REPEAT", Items: items})
	require.Error(t, err)
	assert.Equal(t, "Coupon has already been used", err.Error())
}

func TestOrderService_CreateOrder_LowStockNotification(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	// 25 - 6 = 19, crossing the threshold of 20
	_, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 12", Quantity: 6},
		},
	})
	require.NoError(t, err)

	alerts := f.notifications(model.NotificationTypeInventory)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "Box of 12")
}

func TestOrderService_CreateOrder_NoLowStockAboveThreshold(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	// 50 - 2 = 48, well above the threshold
	_, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Empty(t, f.notifications(model.NotificationTypeInventory))
}

func TestOrderService_CreateOrder_MailFailureDoesNotFailOrder(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())
	f.mail.failNext = true

	order, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)

	// The send was attempted against the shopper's address and failed
	assert.Equal(t, 1, f.mail.attemptCount())
	assert.Zero(t, f.mail.sentCount())
}

func TestOrderService_UpdateStatus_Refunded(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	order, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	require.NoError(t, err)
	mailsBefore := f.mail.sentCount()

	updated, err := f.orderService.UpdateStatus(order.ID, UpdateOrderStatusInput{
		Status: model.OrderStatusRefunded,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusRefunded, updated.Status)
	assert.Equal(t, model.PaymentStatusRefunded, updated.PaymentStatus)
	assert.Equal(t, mailsBefore+1, f.mail.sentCount())
}

func TestOrderService_UpdateStatus_DeliveryDetails(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	order, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	require.NoError(t, err)

	updated, err := f.orderService.UpdateStatus(order.ID, UpdateOrderStatusInput{
		Status:          model.OrderStatusOutForDelivery,
		DeliveryCourier: "Lalamove",
		DeliveryNote:    "Leave at the gate",
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusOutForDelivery, updated.Status)
	assert.Equal(t, "Lalamove", updated.DeliveryCourier)
	assert.Equal(t, "Leave at the gate", updated.DeliveryNote)
}

func TestOrderService_UpdateStatus_OutForDeliveryRequiresCourier(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	order, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID: &f.user.ID,
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = f.orderService.UpdateStatus(order.ID, UpdateOrderStatusInput{
		Status: model.OrderStatusOutForDelivery,
	})
	assert.ErrorIs(t, err, ErrCourierRequired)

	// The order did not move
	unchanged, err := f.orderService.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusReceived, unchanged.Status)
}

func TestOrderService_UpdateStatus_InvalidStatus(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	_, err := f.orderService.UpdateStatus(1, UpdateOrderStatusInput{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_TrackGuestOrder(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	order, err := f.orderService.CreateOrder(CreateOrderInput{
		GuestEmail: "guest@example.com",
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	require.NoError(t, err)

	found, err := f.orderService.TrackGuestOrder(order.OrderNumber, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	// Wrong email reads as not found
	_, err = f.orderService.TrackGuestOrder(order.OrderNumber, "wrong@example.com")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_CreateOrder_ExpiredCouponRejected(t *testing.T) {
	f := setupOrderServiceTest(t, defaultInventory())

	expired := time.Now().Add(-time.Hour)
	f.testDB.Create(&model.Coupon{
		Code: "OLD", Type: model.CouponTypeFixedAmount, Value: 10,
		IsActive: true, ExpiresAt: &expired,
	})

	_, err := f.orderService.CreateOrder(CreateOrderInput{
		UserID:     &f.user.ID,
		CouponCode: "OLD",
		Items: []OrderItemInput{
			{ProductID: f.product.ID, VariantName: "Box of 6", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, ErrCouponExpired)

	// Rejected coupon means no stock movement
	variant := f.variant("Box of 6")
	assert.Equal(t, 50, variant.StockQuantity)
}
