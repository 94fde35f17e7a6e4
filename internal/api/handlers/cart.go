package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/api/middleware"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	service "github.com/hlewluv/Food-Delivery-App-sub000/internal/services"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetRestaurantCart godoc
//
//	@Summary		Get the cart for one restaurant
//	@Description	Returns the caller's lines for a restaurant with item count and price totals.
//	@Tags			Carts
//	@Produce		json
//	@Param			restaurantId	path		string					true	"Restaurant ID"
//	@Success		200				{object}	models.RestaurantCart	"Restaurant cart"
//	@Failure		401				{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500				{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/carts/restaurants/{restaurantId} [get]
func (h *CartHandler) GetRestaurantCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		restaurantID := r.PathValue("restaurantId")
		if restaurantID == "" {
			response.Error(w, errors.BadRequestError("Restaurant ID is required"))
			return
		}

		cart, err := h.cartService.GetRestaurantCart(r.Context(), claims.UserID, restaurantID)
		if err != nil {
			logger.Error("Failed to get cart", slog.String("restaurantId", restaurantID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//
//	@Summary		Add an item to the cart
//	@Description	Adds a line, merging quantities with an existing line of identical customisation.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Item to add"
//	@Success		200		{object}	models.RestaurantCart	"Updated restaurant cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/carts/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.String("itemId", req.Item.ID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("itemId", req.Item.ID), slog.String("restaurantId", req.RestaurantID))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//
//	@Summary		Change a line's quantity
//	@Description	A quantity of zero or less removes the line. Unknown lines are ignored.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateQuantityRequest	true	"Line and new quantity"
//	@Success		200		{object}	models.RestaurantCart			"Updated restaurant cart"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Security		BearerAuth
//	@Router			/carts/items [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update cart", slog.String("itemId", req.ItemID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//
//	@Summary		Remove an item from the cart
//	@Description	Without a customisation every variant of the item is removed.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.RemoveItemRequest	true	"Line to remove"
//	@Success		200		{object}	models.RestaurantCart		"Updated restaurant cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Security		BearerAuth
//	@Router			/carts/items [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart update attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid remove item input")
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to remove item", slog.String("itemId", req.ItemID), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// GetPendingUpdates godoc
//
//	@Summary		Read the caller's offline queue for a restaurant
//	@Tags			Carts
//	@Produce		json
//	@Param			restaurantId	path		string					true	"Restaurant ID"
//	@Success		200				{array}		models.CartLineItem		"Queued lines"
//	@Failure		401				{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/carts/pending/{restaurantId} [get]
func (h *CartHandler) GetPendingUpdates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		restaurantID := r.PathValue("restaurantId")
		if restaurantID == "" {
			response.Error(w, errors.BadRequestError("Restaurant ID is required"))
			return
		}

		items, err := h.cartService.PendingUpdates(r.Context(), claims.UserID, restaurantID)
		if err != nil {
			logger.Error("Failed to read pending cart updates", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

// ClearPendingUpdates godoc
//
//	@Summary		Drop the caller's offline queue for a restaurant after a successful resync
//	@Tags			Carts
//	@Param			restaurantId	path	string	true	"Restaurant ID"
//	@Success		204
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/carts/pending/{restaurantId} [delete]
func (h *CartHandler) ClearPendingUpdates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		restaurantID := r.PathValue("restaurantId")
		if restaurantID == "" {
			response.Error(w, errors.BadRequestError("Restaurant ID is required"))
			return
		}

		if err := h.cartService.ClearPendingUpdates(r.Context(), claims.UserID, restaurantID); err != nil {
			logger.Error("Failed to clear pending cart updates", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Pending cart updates cleared", slog.String("restaurantId", restaurantID))
		w.WriteHeader(http.StatusNoContent)
	}
}
