package service

import (
	"errors"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/internal/app/model"
	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/pkg/logger"
	"github.com/bitebakers/brownie-backend/pkg/mailer"
	"github.com/bitebakers/brownie-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrOrderVariantInvalid = errors.New("unknown product variant")
	ErrInsufficientStock   = errors.New("insufficient stock for requested quantity")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrGuestEmailRequired  = errors.New("guest orders require an email address")
	ErrCourierRequired     = errors.New("a delivery courier is required to mark an order out for delivery")
)

type OrderItemInput struct {
	ProductID   uint
	VariantName string
	Quantity    int
}

type CreateOrderInput struct {
	UserID        *uint
	GuestEmail    string
	Items         []OrderItemInput
	CouponCode    string
	PaymentMethod string
	DeliveryNote  string
}

type UpdateOrderStatusInput struct {
	Status          model.OrderStatus
	DeliveryCourier string
	DeliveryNote    string
}

type OrderService interface {
	CreateOrder(input CreateOrderInput) (*model.Order, error)
	GetByID(id uint) (*model.Order, error)
	ListForUser(userID uint) ([]model.Order, error)
	ListAll(status string, limit, offset int) ([]model.Order, int64, error)
	UpdateStatus(id uint, input UpdateOrderStatusInput) (*model.Order, error)
	TrackGuestOrder(orderNumber, email string) (*model.Order, error)
}

type orderService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	couponService CouponService
	notifications NotificationService
	mail          mailer.Mailer
	inventoryCfg  config.InventoryConfig
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponService CouponService,
	notifications NotificationService,
	mail mailer.Mailer,
	inventoryCfg config.InventoryConfig,
) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		couponService: couponService,
		notifications: notifications,
		mail:          mail,
		inventoryCfg:  inventoryCfg,
	}
}

// lowStockHit records a variant that crossed the alert threshold during
// checkout, so notifications fire after the transaction commits.
type lowStockHit struct {
	product model.Product
	variant model.Variant
}

// CreateOrder places an order for a signed-in shopper or a guest. The
// coupon rule chain runs first so a rejected code fails the whole
// request; stock decrements, coupon usage and the order row then commit
// in one transaction with the variant rows locked.
func (s *orderService) CreateOrder(input CreateOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if input.UserID == nil && input.GuestEmail == "" {
		return nil, ErrGuestEmailRequired
	}

	var coupon *model.Coupon
	if input.CouponCode != "" {
		validated, err := s.couponService.Validate(input.CouponCode, input.UserID)
		if err != nil {
			return nil, err
		}
		coupon = validated
	}

	order := &model.Order{
		OrderNumber:   util.GenerateOrderNumber(),
		UserID:        input.UserID,
		GuestEmail:    input.GuestEmail,
		Status:        model.OrderStatusReceived,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: model.PaymentStatusPending,
		DeliveryNote:  input.DeliveryNote,
	}

	var lowStock []lowStockHit

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		cheapestUnit := 0.0

		for _, item := range input.Items {
			if item.Quantity <= 0 {
				return ErrEmptyOrder
			}

			var product model.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			var variant model.Variant
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("product_id = ? AND name = ?", item.ProductID, item.VariantName).
				First(&variant).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderVariantInvalid
				}
				return err
			}

			if !s.inventoryCfg.AllowOversell && variant.StockQuantity < item.Quantity {
				return ErrInsufficientStock
			}

			variant.SetStock(variant.StockQuantity - item.Quantity)
			if err := tx.Save(&variant).Error; err != nil {
				return err
			}
			if variant.StockQuantity <= LowStockThreshold {
				lowStock = append(lowStock, lowStockHit{product: product, variant: variant})
			}

			order.Items = append(order.Items, model.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				VariantName: variant.Name,
				Price:       variant.Price,
				Quantity:    item.Quantity,
			})
			total += variant.Price * float64(item.Quantity)
			if cheapestUnit == 0 || variant.Price < cheapestUnit {
				cheapestUnit = variant.Price
			}
		}

		if coupon != nil {
			var locked model.Coupon
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&locked, coupon.ID).Error; err != nil {
				return err
			}
			if locked.Exhausted() {
				return ErrCouponExhausted
			}

			locked.UsedCount++
			if err := tx.Save(&locked).Error; err != nil {
				return err
			}
			// Per-user usage rows only exist for signed-in shoppers;
			// guest redemptions count against the global cap alone.
			if input.UserID != nil {
				usage := model.CouponUsage{CouponID: locked.ID, UserID: *input.UserID}
				if err := tx.Create(&usage).Error; err != nil {
					return err
				}
			}

			order.CouponCode = locked.Code
			order.CouponType = locked.Type
			order.CouponValue = locked.Value

			switch locked.Type {
			case model.CouponTypeFixedAmount:
				total -= locked.Value
			case model.CouponTypeFreeProduct:
				total -= cheapestUnit
			}
			if total < 0 {
				total = 0
			}
		}

		order.TotalAmount = total
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	// Reload with the owning user attached so the confirmation email
	// can resolve a registered shopper's address.
	if placed, findErr := s.orderRepo.FindByID(order.ID); findErr == nil {
		order = placed
	} else {
		logger.Error("Failed to reload placed order", findErr, map[string]interface{}{
			"order_id": order.ID,
		})
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"item_count":   len(order.Items),
		"guest":        order.IsGuest(),
	})

	for _, hit := range lowStock {
		s.notifications.NotifyLowStock(&hit.product, &hit.variant)
	}
	s.notifications.NotifyNewOrder(order)
	s.sendConfirmationEmail(order)

	return order, nil
}

// sendConfirmationEmail is best effort: a mail failure never fails the
// order.
func (s *orderService) sendConfirmationEmail(order *model.Order) {
	to := order.ContactEmail()
	if to == "" {
		return
	}
	subject, body := mailer.OrderConfirmationEmail(order)
	if err := s.mail.Send(to, subject, body); err != nil {
		logger.Error("Failed to send order confirmation email", err, map[string]interface{}{
			"order_number": order.OrderNumber,
			"email":        to,
		})
	}
}

func (s *orderService) GetByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListForUser(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) ListAll(status string, limit, offset int) ([]model.Order, int64, error) {
	if status != "" && !model.ValidOrderStatus(model.OrderStatus(status)) {
		return nil, 0, ErrInvalidOrderStatus
	}
	return s.orderRepo.FindAll(status, limit, offset)
}

// UpdateStatus moves an order through its lifecycle. Marking an order
// refunded also flips the payment status and emails the customer.
func (s *orderService) UpdateStatus(id uint, input UpdateOrderStatusInput) (*model.Order, error) {
	if !model.ValidOrderStatus(input.Status) {
		return nil, ErrInvalidOrderStatus
	}
	if input.Status == model.OrderStatusOutForDelivery && input.DeliveryCourier == "" {
		return nil, ErrCourierRequired
	}

	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	order.Status = input.Status
	if input.DeliveryCourier != "" {
		order.DeliveryCourier = input.DeliveryCourier
	}
	if input.DeliveryNote != "" {
		order.DeliveryNote = input.DeliveryNote
	}
	if input.Status == model.OrderStatusRefunded {
		order.PaymentStatus = model.PaymentStatusRefunded
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})

	if input.Status == model.OrderStatusRefunded {
		if to := order.ContactEmail(); to != "" {
			subject, body := mailer.RefundEmail(order)
			if err := s.mail.Send(to, subject, body); err != nil {
				logger.Error("Failed to send refund email", err, map[string]interface{}{
					"order_number": order.OrderNumber,
				})
			}
		}
	}

	return order, nil
}

// TrackGuestOrder looks up a guest order by number and email. A
// mismatched email reads the same as a missing order so the endpoint
// cannot be used to probe order numbers.
func (s *orderService) TrackGuestOrder(orderNumber, email string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.ContactEmail() == "" || order.ContactEmail() != email {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
