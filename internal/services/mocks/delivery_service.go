package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/delivery"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	service "github.com/hlewluv/Food-Delivery-App-sub000/internal/services"
	"github.com/stretchr/testify/mock"
)

type DeliveryService struct {
	mock.Mock
}

func NewDeliveryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *DeliveryService {
	m := &DeliveryService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *DeliveryService) view(args mock.Arguments) (*service.CourierView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.CourierView), args.Error(1)
}

func (m *DeliveryService) SetConnection(ctx context.Context, courierID uuid.UUID, connected bool) (*service.CourierView, error) {
	return m.view(m.Called(ctx, courierID, connected))
}

func (m *DeliveryService) UpdateLocation(ctx context.Context, courierID uuid.UUID, location models.Location) (*service.CourierView, error) {
	return m.view(m.Called(ctx, courierID, location))
}

func (m *DeliveryService) Delivery(ctx context.Context, courierID uuid.UUID) (*service.CourierView, error) {
	return m.view(m.Called(ctx, courierID))
}

func (m *DeliveryService) Act(ctx context.Context, courierID uuid.UUID, action delivery.Action) (*service.CourierView, error) {
	return m.view(m.Called(ctx, courierID, action))
}

func (m *DeliveryService) HandleOffer(ctx context.Context, order *models.DeliveryOrder) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *DeliveryService) Wait() {
	m.Called()
}
