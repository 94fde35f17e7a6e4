package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/config"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	repository "github.com/hlewluv/Food-Delivery-App-sub000/internal/repositories"
	"github.com/hlewluv/Food-Delivery-App-sub000/pkg/stripe"
	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

// StatusTracker starts advancing an order through its fulfilment statuses.
type StatusTracker interface {
	Track(orderID uuid.UUID, from models.OrderStatus)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error)
	QRCode(orderURL string) ([]byte, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error)
}

type paymentService struct {
	stripeClient stripe.Client
	orderRepo    repository.OrderRepository
	tracker      StatusTracker
	cfg          config.Stripe
}

func NewPaymentService(stripeClient stripe.Client, orderRepo repository.OrderRepository, tracker StatusTracker, cfg config.Stripe) PaymentService {
	return &paymentService{stripeClient: stripeClient, orderRepo: orderRepo, tracker: tracker, cfg: cfg}
}

// CreatePayment implements PaymentService.
func (s *paymentService) CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, errors.AddValidationError("amount", "must be greater than zero")
	}

	orderID := req.OrderID
	if orderID == uuid.Nil {
		orderID = uuid.New()
	}

	session, err := s.stripeClient.CreateCheckoutSession(stripe.CheckoutParams{
		OrderID:    orderID.String(),
		CustomerID: req.UserID.String(),
		Amount:     req.Amount.Round(0).IntPart(),
		Currency:   s.cfg.Currency,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
	})
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to create payment session").WithError(err)
	}

	if session == nil || session.URL == "" {
		return nil, errors.ThirdPartyError("Payment provider returned no payment URL")
	}

	return &models.PaymentResponse{OrderURL: session.URL}, nil
}

// QRCode implements PaymentService.
func (s *paymentService) QRCode(orderURL string) ([]byte, error) {
	if orderURL == "" {
		return nil, errors.AddValidationError("url", "is required")
	}

	png, err := qrcode.Encode(orderURL, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, errors.BadRequestError("Failed to encode payment URL").WithError(err)
	}

	return png, nil
}

// ProcessWebhook implements PaymentService. A completed checkout session confirms its order.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {
	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return stripe.Event{}, errors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	if string(event.Type) != stripe.EventCheckoutSessionCompleted {
		return event, nil
	}

	if event.Data == nil {
		return event, errors.ThirdPartyError("Missing session data in webhook")
	}

	reference, _ := event.Data.Object["client_reference_id"].(string)

	orderID, err := uuid.Parse(reference)
	if err != nil {
		return event, errors.ThirdPartyError("Missing order reference in webhook").WithError(err)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, models.OrderStatusConfirmed); err != nil {
		return event, errors.DatabaseError("Failed to confirm order").WithError(err)
	}

	s.tracker.Track(orderID, models.OrderStatusConfirmed)

	slog.Info("Order payment confirmed", slog.String("orderId", orderID.String()))

	return event, nil
}
