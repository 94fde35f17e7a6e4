package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/stretchr/testify/mock"
)

type PendingCartRepository struct {
	mock.Mock
}

func NewPendingCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *PendingCartRepository {
	m := &PendingCartRepository{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *PendingCartRepository) Save(ctx context.Context, customerID uuid.UUID, restaurantID string, items []models.CartLineItem) error {
	args := m.Called(ctx, customerID, restaurantID, items)

	return args.Error(0)
}

func (m *PendingCartRepository) Load(ctx context.Context, customerID uuid.UUID, restaurantID string) ([]models.CartLineItem, error) {
	args := m.Called(ctx, customerID, restaurantID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartLineItem), args.Error(1)
}

func (m *PendingCartRepository) Clear(ctx context.Context, customerID uuid.UUID, restaurantID string) error {
	args := m.Called(ctx, customerID, restaurantID)

	return args.Error(0)
}
