package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/api/middleware"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	service "github.com/hlewluv/Food-Delivery-App-sub000/internal/services"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils/response"
)

const maxWebhookBodyBytes = 64 << 10

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

// CreatePayment godoc
//
//	@Summary		Start an online payment
//	@Description	Creates a hosted payment page for the amount and returns its URL.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.PaymentRequest	true	"Payment details"
//	@Success		200		{object}	models.PaymentResponse	"Payment URL"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		403		{object}	response.ErrorResponse	"Paying for another user"
//	@Failure		502		{object}	response.ErrorResponse	"Payment provider error"
//	@Security		BearerAuth
//	@Router			/payments [post]
func (h *PaymentHandler) CreatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized payment attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.PaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if req.UserID != uuid.Nil && req.UserID != claims.UserID {
			logger.Warn("User attempted to pay for another user", slog.String("requesterId", claims.UserID.String()))
			response.Error(w, errors.ForbiddenError("You can only make payments for yourself"))
			return
		}
		req.UserID = claims.UserID

		payment, err := h.paymentService.CreatePayment(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to initiate payment", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Payment initiated", slog.String("orderId", req.OrderID.String()))
		response.Success(w, http.StatusOK, payment)
	}
}

// PaymentQRCode godoc
//
//	@Summary		QR code for a payment URL
//	@Tags			Payments
//	@Produce		png
//	@Param			url	query		string					true	"Payment URL"
//	@Success		200	{file}		binary					"PNG image"
//	@Failure		400	{object}	response.ErrorResponse	"Missing URL"
//	@Security		BearerAuth
//	@Router			/payments/qr [get]
func (h *PaymentHandler) PaymentQRCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		png, err := h.paymentService.QRCode(r.URL.Query().Get("url"))
		if err != nil {
			logger.Warn("Failed to render payment QR code", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(png); err != nil {
			logger.Error("Failed to write QR code", slog.String("error", err.Error()))
		}
	}
}

// HandleStripeWebhook godoc
//
//	@Summary		Stripe webhook receiver
//	@Description	Verifies the Stripe-Signature header; a completed checkout session confirms its order.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]string		"Event accepted"
//	@Failure		400	{object}	response.ErrorResponse	"Bad payload or signature"
//	@Router			/payments/webhook [post]
func (h *PaymentHandler) HandleStripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
		if err != nil {
			logger.Warn("Failed to read webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Unable to read request body"))
			return
		}

		event, err := h.paymentService.ProcessWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			logger.Error("Failed to process webhook", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Webhook processed", slog.String("eventId", event.ID), slog.String("type", string(event.Type)))
		response.Success(w, http.StatusOK, map[string]string{"status": "received"})
	}
}
