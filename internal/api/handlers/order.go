package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/api/middleware"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	service "github.com/hlewluv/Food-Delivery-App-sub000/internal/services"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// Checkout godoc
//
//	@Summary		Place an order for one restaurant's cart
//	@Description	Turns the caller's lines for the restaurant into an order. Redirect payment methods return a payment URL; offline checkouts are queued and return 202.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CheckoutRequest	true	"Checkout details"
//	@Success		201		{object}	models.CheckoutResponse	"Order placed"
//	@Success		202		{object}	models.CheckoutResponse	"Queued while offline"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		502		{object}	response.ErrorResponse	"Payment provider error"
//	@Security		BearerAuth
//	@Router			/orders/checkout [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		if req.Email == "" {
			req.Email = claims.Email
		}

		resp, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.String("restaurantId", req.RestaurantID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if resp.Pending {
			logger.Info("Checkout queued", slog.String("restaurantId", req.RestaurantID))
			response.Success(w, http.StatusAccepted, resp)
			return
		}

		logger.Info("Order placed", slog.String("orderId", resp.Order.ID.String()))
		response.Success(w, http.StatusCreated, resp)
	}
}

// GetOrder godoc
//
//	@Summary		Get an order by ID
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Error("Failed to get order", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//
//	@Summary		List the caller's orders, newest first
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int							false	"Page number (default: 1)"					minimum(1)
//	@Param			pageSize	query		int							false	"Items per page (default: 10, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.OrderHistoryResponse	"Order history"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order list attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		history, err := h.orderService.ListOrders(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Orders listed", slog.Int("count", len(history.Orders)), slog.Int("total", history.Total))
		response.Success(w, http.StatusOK, history)
	}
}

// GetOrderStatus godoc
//
//	@Summary		Current fulfilment status of an order
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string						true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.OrderStatusResponse	"Status"
//	@Failure		404	{object}	response.ErrorResponse		"Order not found"
//	@Security		BearerAuth
//	@Router			/orders/{id}/status [get]
func (h *OrderHandler) GetOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		status, err := h.orderService.GetOrderStatus(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Error("Failed to get order status", slog.String("orderId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, status)
	}
}
