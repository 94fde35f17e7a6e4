package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/api/middleware"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/delivery"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	service "github.com/hlewluv/Food-Delivery-App-sub000/internal/services"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils/response"
)

type CourierHandler struct {
	deliveryService service.DeliveryService
	validator       *validator.Validate
}

func NewCourierHandler(deliveryService service.DeliveryService) *CourierHandler {
	return &CourierHandler{deliveryService: deliveryService, validator: validator.New()}
}

// SetConnection godoc
//
//	@Summary		Go online or offline
//	@Description	Going offline cancels the order in hand.
//	@Tags			Couriers
//	@Accept			json
//	@Produce		json
//	@Param			connection	body		models.ConnectionRequest	true	"Connection state"
//	@Success		200			{object}	service.CourierView			"Courier view"
//	@Failure		403			{object}	response.ErrorResponse		"Not a courier"
//	@Security		BearerAuth
//	@Router			/couriers/connection [post]
func (h *CourierHandler) SetConnection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.ConnectionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.deliveryService.SetConnection(r.Context(), claims.UserID, req.Connected)
		if err != nil {
			logger.Error("Failed to change connection", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Courier connection changed", slog.Bool("connected", req.Connected))
		response.Success(w, http.StatusOK, view)
	}
}

// UpdateLocation godoc
//
//	@Summary		Report the courier's live location
//	@Tags			Couriers
//	@Accept			json
//	@Produce		json
//	@Param			location	body		models.LocationUpdateRequest	true	"Current position"
//	@Success		200			{object}	service.CourierView				"Courier view"
//	@Failure		400			{object}	response.ErrorResponse			"Validation error"
//	@Security		BearerAuth
//	@Router			/couriers/location [put]
func (h *CourierHandler) UpdateLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.LocationUpdateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.deliveryService.UpdateLocation(r.Context(), claims.UserID, req.Location)
		if err != nil {
			logger.Error("Failed to update location", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// GetDelivery godoc
//
//	@Summary		Current delivery flow state
//	@Tags			Couriers
//	@Produce		json
//	@Success		200	{object}	service.CourierView	"Courier view"
//	@Security		BearerAuth
//	@Router			/couriers/delivery [get]
func (h *CourierHandler) GetDelivery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		view, err := h.deliveryService.Delivery(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Act godoc
//
//	@Summary		Apply a delivery flow action
//	@Tags			Couriers
//	@Produce		json
//	@Param			action	path		string					true	"Action"	Enums(start, arrive, complete, dismiss, minimize, restore, back, decline)
//	@Success		200		{object}	service.CourierView		"Courier view"
//	@Failure		400		{object}	response.ErrorResponse	"Unknown action"
//	@Failure		409		{object}	response.ErrorResponse	"Action not allowed in the current state"
//	@Security		BearerAuth
//	@Router			/couriers/delivery/{action} [post]
func (h *CourierHandler) Act() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		action := delivery.Action(r.PathValue("action"))
		if action == "" {
			response.Error(w, errors.BadRequestError("Action is required"))
			return
		}

		view, err := h.deliveryService.Act(r.Context(), claims.UserID, action)
		if err != nil {
			logger.Warn("Delivery action rejected", slog.String("action", string(action)), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Delivery action applied", slog.String("action", string(action)), slog.String("state", string(view.State)))
		response.Success(w, http.StatusOK, view)
	}
}
