package mocks

import (
	"context"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func NewPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *Publisher {
	m := &Publisher{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Publisher) PublishOrderPlaced(ctx context.Context, order *models.DeliveryOrder) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *Publisher) Close() error {
	args := m.Called()

	return args.Error(0)
}
