package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func NewOrderService(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderService {
	m := &OrderService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *OrderService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	args := m.Called(ctx, customerID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutResponse), args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, customerID, orderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error) {
	args := m.Called(ctx, customerID, page, size)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderHistoryResponse), args.Error(1)
}

func (m *OrderService) GetOrderStatus(ctx context.Context, customerID, orderID uuid.UUID) (*models.OrderStatusResponse, error) {
	args := m.Called(ctx, customerID, orderID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OrderStatusResponse), args.Error(1)
}

type OrderTracker struct {
	mock.Mock
}

func NewOrderTracker(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderTracker {
	m := &OrderTracker{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *OrderTracker) Track(orderID uuid.UUID, from models.OrderStatus) {
	m.Called(orderID, from)
}

func (m *OrderTracker) Status(ctx context.Context, orderID uuid.UUID) (models.OrderStatus, bool) {
	args := m.Called(ctx, orderID)

	return args.Get(0).(models.OrderStatus), args.Bool(1)
}
