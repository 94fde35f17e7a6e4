package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cart"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func NewCartService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartService {
	m := &CartService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CartService) restaurantCart(args mock.Arguments) (*models.RestaurantCart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.RestaurantCart), args.Error(1)
}

func (m *CartService) GetRestaurantCart(ctx context.Context, customerID uuid.UUID, restaurantID string) (*models.RestaurantCart, error) {
	return m.restaurantCart(m.Called(ctx, customerID, restaurantID))
}

func (m *CartService) AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.RestaurantCart, error) {
	return m.restaurantCart(m.Called(ctx, customerID, req))
}

func (m *CartService) UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.RestaurantCart, error) {
	return m.restaurantCart(m.Called(ctx, customerID, req))
}

func (m *CartService) RemoveItem(ctx context.Context, customerID uuid.UUID, req *models.RemoveItemRequest) (*models.RestaurantCart, error) {
	return m.restaurantCart(m.Called(ctx, customerID, req))
}

func (m *CartService) Cart(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *CartService) PendingUpdates(ctx context.Context, customerID uuid.UUID, restaurantID string) ([]models.CartLineItem, error) {
	args := m.Called(ctx, customerID, restaurantID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartLineItem), args.Error(1)
}

func (m *CartService) ClearPendingUpdates(ctx context.Context, customerID uuid.UUID, restaurantID string) error {
	args := m.Called(ctx, customerID, restaurantID)

	return args.Error(0)
}

func (m *CartService) Wait() {
	m.Called()
}
