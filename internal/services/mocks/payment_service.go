package mocks

import (
	"context"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/hlewluv/Food-Delivery-App-sub000/pkg/stripe"
	"github.com/stretchr/testify/mock"
)

type PaymentService struct {
	mock.Mock
}

func NewPaymentService(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentService {
	m := &PaymentService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *PaymentService) CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PaymentResponse), args.Error(1)
}

func (m *PaymentService) QRCode(orderURL string) ([]byte, error) {
	args := m.Called(orderURL)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func (m *PaymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(ctx, payload, signature)

	return args.Get(0).(stripe.Event), args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func NewNotificationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *NotificationService {
	m := &NotificationService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *NotificationService) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	args := m.Called(ctx, to, order)

	return args.Error(0)
}
