package mocks

import (
	"github.com/hlewluv/Food-Delivery-App-sub000/pkg/stripe"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	m := &Client{}
	m.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Client) CreateCheckoutSession(params stripe.CheckoutParams) (*stripe.CheckoutSession, error) {
	args := m.Called(params)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

func (m *Client) VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)

	return args.Get(0).(stripe.Event), args.Error(1)
}
