package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cartsync"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/events"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/metrics"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	repository "github.com/hlewluv/Food-Delivery-App-sub000/internal/repositories"
	"github.com/shopspring/decimal"
)

const offlineNotice = "You are offline. Your order has been saved and will be sent when you reconnect."

// OrderTracker is the status source for placed orders.
type OrderTracker interface {
	StatusTracker
	Status(ctx context.Context, orderID uuid.UUID) (models.OrderStatus, bool)
}

type OrderService interface {
	Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
	GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error)
	GetOrderStatus(ctx context.Context, customerID, orderID uuid.UUID) (*models.OrderStatusResponse, error)
}

type orderService struct {
	carts       CartService
	orderRepo   repository.OrderRepository
	pending     repository.PendingCartRepository
	prober      cartsync.Prober
	payments    PaymentService
	notifier    NotificationService
	publisher   events.Publisher
	tracker     OrderTracker
	shippingFee decimal.Decimal
}

type OrderServiceDeps struct {
	Carts       CartService
	OrderRepo   repository.OrderRepository
	Pending     repository.PendingCartRepository
	Prober      cartsync.Prober
	Payments    PaymentService
	Notifier    NotificationService
	Publisher   events.Publisher
	Tracker     OrderTracker
	ShippingFee decimal.Decimal
}

func NewOrderService(deps OrderServiceDeps) OrderService {
	return &orderService{
		carts:       deps.Carts,
		orderRepo:   deps.OrderRepo,
		pending:     deps.Pending,
		prober:      deps.Prober,
		payments:    deps.Payments,
		notifier:    deps.Notifier,
		publisher:   deps.Publisher,
		tracker:     deps.Tracker,
		shippingFee: deps.ShippingFee,
	}
}

// Checkout hands the restaurant's cart lines over as an order. The cart is only cleared once
// the order is persisted and, for redirect methods, a payment URL exists.
func (s *orderService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	logger := slog.With(slog.String("customerId", customerID.String()), slog.String("restaurantId", req.RestaurantID))

	shippingFee := s.shippingFee
	if req.ShippingFee != nil {
		shippingFee = *req.ShippingFee
	}

	if err := validateCheckout(req, shippingFee); err != nil {
		return nil, err
	}

	c, err := s.carts.Cart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	lines := c.ItemsByRestaurant(req.RestaurantID)
	if len(lines) == 0 {
		return nil, errors.ValidationError("Cart has no items for this restaurant")
	}

	subtotal := c.TotalPriceByRestaurant(req.RestaurantID)

	order := &models.Order{
		ID:                   uuid.New(),
		CustomerID:           customerID,
		Items:                lines,
		RestaurantID:         req.RestaurantID,
		RestaurantName:       req.RestaurantName,
		RestaurantImage:      req.RestaurantImage,
		Subtotal:             subtotal,
		ShippingFee:          shippingFee,
		Discount:             req.Discount,
		Total:                OrderTotal(subtotal, shippingFee, req.Discount),
		PaymentMethod:        req.PaymentMethod,
		DeliveryInstructions: strings.TrimSpace(req.DeliveryInstructions),
		Address:              strings.TrimSpace(req.Address),
		Status:               models.OrderStatusPending,
		CreatedAt:            time.Now().UTC(),
	}

	if !s.prober.Online(ctx) {
		if err := s.pending.Save(ctx, customerID, req.RestaurantID, lines); err != nil {
			return nil, errors.DatabaseError("Failed to queue order while offline").WithError(err)
		}

		order.Status = models.OrderStatusQueued
		metrics.OrderPlaced(string(order.PaymentMethod), string(order.Status))
		logger.Info("Checkout queued while offline", slog.String("orderId", order.ID.String()))

		return &models.CheckoutResponse{Order: order, Pending: true, Notice: offlineNotice}, nil
	}

	logger = logger.With(slog.String("orderId", order.ID.String()))

	// A failed payment attempt must leave no order row.
	redirect := order.PaymentMethod.RequiresRedirect() && order.Total.IsPositive()
	if redirect {
		payment, err := s.payments.CreatePayment(ctx, &models.PaymentRequest{
			UserID:  customerID,
			OrderID: order.ID,
			Amount:  order.Total,
		})
		if err != nil {
			return nil, err
		}

		order.PaymentURL = payment.OrderURL
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	if !redirect {
		s.tracker.Track(order.ID, order.Status)
		s.sendConfirmation(ctx, logger, req.Email, order)
	}

	if err := s.publisher.PublishOrderPlaced(ctx, toDeliveryOrder(order, req)); err != nil {
		logger.Error("Failed to publish delivery offer", slog.String("error", err.Error()))
	}

	c.ClearRestaurant(req.RestaurantID)

	metrics.OrderPlaced(string(order.PaymentMethod), string(order.Status))
	logger.Info("Order placed", slog.String("total", order.Total.String()))

	return &models.CheckoutResponse{Order: order}, nil
}

func (s *orderService) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	// Another customer's order is reported as missing.
	if order.CustomerID != customerID {
		return nil, errors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	orders, total, err := s.orderRepo.ListOrdersByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.OrderHistoryResponse{Orders: orders, Total: total, Page: page, Size: size}, nil
}

func (s *orderService) GetOrderStatus(ctx context.Context, customerID, orderID uuid.UUID) (*models.OrderStatusResponse, error) {
	order, err := s.GetOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	status := order.Status
	if live, ok := s.tracker.Status(ctx, orderID); ok {
		status = live
	}

	return &models.OrderStatusResponse{OrderID: orderID, Status: status}, nil
}

func (s *orderService) sendConfirmation(ctx context.Context, logger *slog.Logger, to string, order *models.Order) {
	if to == "" || s.notifier == nil {
		return
	}

	if err := s.notifier.SendOrderConfirmation(ctx, to, order); err != nil {
		logger.Warn("Failed to send order confirmation", slog.String("error", err.Error()))
	}
}

// OrderTotal is subtotal + shipping - discount, never below zero.
func OrderTotal(subtotal, shippingFee, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shippingFee).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}

	return total
}

func validateCheckout(req *models.CheckoutRequest, shippingFee decimal.Decimal) error {
	switch {
	case strings.TrimSpace(req.Address) == "":
		return errors.AddValidationError("address", "is required")
	case !req.PaymentMethod.Valid():
		return errors.AddValidationError("payment_method", "must be one of cash, zalopay, card")
	case shippingFee.IsNegative():
		return errors.AddValidationError("shipping_fee", "must not be negative")
	case req.Discount.IsNegative():
		return errors.AddValidationError("discount", "must not be negative")
	}

	return nil
}

func toDeliveryOrder(order *models.Order, req *models.CheckoutRequest) *models.DeliveryOrder {
	items := make([]models.DeliveryOrderItem, 0, len(order.Items))

	for _, line := range order.Items {
		item := models.DeliveryOrderItem{
			ID:          line.Item.ID,
			FoodName:    line.Item.Name,
			Quantity:    line.Quantity,
			Description: line.SpecialRequest,
			Price:       line.LineTotal(),
		}

		if len(line.SelectedOptions) > 0 {
			choices := make([]string, 0, len(line.SelectedOptions))
			for _, opt := range line.SelectedOptions {
				choices = append(choices, opt.Name)
			}

			item.OptionMenu = []models.OptionSelection{{Group: "options", Choices: choices}}
		}

		items = append(items, item)
	}

	earnings := order.ShippingFee

	delivery := &models.DeliveryOrder{
		ID: order.ID.String(),
		Restaurant: models.Party{
			Name:    order.RestaurantName,
			Address: req.RestaurantAddress,
		},
		Customer: models.Party{
			Name:    req.CustomerName,
			Address: order.Address,
			Phone:   req.CustomerPhone,
		},
		Items:         items,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Earnings:      &earnings,
	}

	if req.RestaurantLocation != nil {
		delivery.Restaurant.Location = *req.RestaurantLocation
	}

	if req.DeliveryLocation != nil {
		delivery.Customer.Location = *req.DeliveryLocation
	}

	return delivery
}
