package mocks

import (
	"context"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func NewEmailService(t interface {
	mock.TestingT
	Cleanup(func())
}) *EmailService {
	m := &EmailService{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

func (m *EmailService) GetSendGridClient() *sendgrid.Client {
	args := m.Called()

	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(*sendgrid.Client)
}
