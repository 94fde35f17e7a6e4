package stripe

import (
	"errors"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

type (
	Event           = stripe.Event
	CheckoutSession = stripe.CheckoutSession
)

const EventCheckoutSessionCompleted = "checkout.session.completed"

// CheckoutParams describes a single hosted payment page for one order.
type CheckoutParams struct {
	OrderID    string
	CustomerID string
	// Amount is in the currency's smallest unit; VND is zero-decimal.
	Amount     int64
	Currency   string
	SuccessURL string
	CancelURL  string
}

// defines the methods that any of payment client must implement.
type Client interface {
	CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

// stripeClient is the implementation of the Client interface.
type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	stripe.Key = apiKey

	return &stripeClient{webhookSecret: webhookSecret}
}

// CreateCheckoutSession implements Client.
func (s *stripeClient) CreateCheckoutSession(p CheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(p.OrderID),
		SuccessURL:        stripe.String(p.SuccessURL),
		CancelURL:         stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Order " + p.OrderID),
					},
				},
			},
		},
	}

	params.AddMetadata("order_id", p.OrderID)
	params.AddMetadata("customer_id", p.CustomerID)

	return session.New(params)
}

// VerifyWebhookSignature implements Client.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
