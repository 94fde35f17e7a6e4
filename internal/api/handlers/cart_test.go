package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/api/handlers"
	appErrors "github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/services/mocks"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCartTest(t *testing.T) (*mocks.CartService, *handlers.CartHandler) {
	mockCartService := mocks.NewCartService(t)
	return mockCartService, handlers.NewCartHandler(mockCartService)
}

func restaurantCart() *models.RestaurantCart {
	return &models.RestaurantCart{
		RestaurantID: "1",
		Items: []models.CartLineItem{{
			Item:         models.MenuItem{ID: "big-mac", Name: "Big Mac", UnitPrice: decimal.NewFromInt(49000)},
			RestaurantID: "1",
			Quantity:     2,
		}},
		TotalItems: 2,
		TotalPrice: decimal.NewFromInt(98000),
	}
}

func TestGetRestaurantCart(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/carts/restaurants/1", nil, userID,
			map[string]string{"restaurantId": "1"})
		rr := httptest.NewRecorder()

		mockCartService.On("GetRestaurantCart", mock.Anything, userID, "1").Return(restaurantCart(), nil).Once()

		// Act
		cartHandler.GetRestaurantCart().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.RestaurantCart
		resp, err := testutils.DecodeResponse(rr.Body.Bytes(), &got)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 2, got.TotalItems)
		assert.True(t, decimal.NewFromInt(98000).Equal(got.TotalPrice))
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/carts/restaurants/1", nil,
			map[string]string{"restaurantId": "1"})
		rr := httptest.NewRecorder()

		cartHandler.GetRestaurantCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/carts/restaurants/1", nil, userID,
			map[string]string{"restaurantId": "1"})
		rr := httptest.NewRecorder()

		mockCartService.On("GetRestaurantCart", mock.Anything, userID, "1").
			Return(nil, appErrors.DatabaseError("Failed to load cart")).Once()

		cartHandler.GetRestaurantCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		resp, err := testutils.DecodeResponse(rr.Body.Bytes(), nil)
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, resp.Error.Code)
	})
}

func TestAddItem(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCartService, cartHandler := setupCartTest(t)
		body, _ := json.Marshal(models.AddItemRequest{
			Item:           models.MenuItem{ID: "big-mac", Name: "Big Mac", UnitPrice: decimal.NewFromInt(49000)},
			RestaurantID:   "1",
			Quantity:       2,
			SpecialRequest: "no pickles",
		})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/carts/items", bytes.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("AddItem", mock.Anything, userID, mock.MatchedBy(func(r *models.AddItemRequest) bool {
			return r.Item.ID == "big-mac" && r.Quantity == 2 && r.SpecialRequest == "no pickles"
		})).Return(restaurantCart(), nil).Once()

		// Act
		cartHandler.AddItem().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Validation", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)
		body := `{"item":{"id":"big-mac","name":"Big Mac","unit_price":"49000"},"restaurant_id":"1","quantity":0}`
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/carts/items", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		resp, err := testutils.DecodeResponse(rr.Body.Bytes(), nil)
		require.NoError(t, err)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("Failure - Malformed JSON", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/carts/items", strings.NewReader("{"), userID, nil)
		rr := httptest.NewRecorder()

		cartHandler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	userID := uuid.New()

	t.Run("Update - Success", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		body := `{"item_id":"big-mac","restaurant_id":"1","quantity":0}`
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/carts/items", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("UpdateQuantity", mock.Anything, userID, mock.MatchedBy(func(r *models.UpdateQuantityRequest) bool {
			return r.ItemID == "big-mac" && r.Quantity == 0
		})).Return(&models.RestaurantCart{RestaurantID: "1", Items: []models.CartLineItem{}}, nil).Once()

		cartHandler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Remove - without customisation", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		body := `{"item_id":"big-mac","restaurant_id":"1"}`
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/carts/items", strings.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		mockCartService.On("RemoveItem", mock.Anything, userID, mock.MatchedBy(func(r *models.RemoveItemRequest) bool {
			return r.SpecialRequest == nil && r.SelectedOptions == nil
		})).Return(&models.RestaurantCart{RestaurantID: "1"}, nil).Once()

		cartHandler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Remove - Validation", func(t *testing.T) {
		_, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/carts/items", strings.NewReader(`{"item_id":"big-mac"}`), userID, nil)
		rr := httptest.NewRecorder()

		cartHandler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestPendingUpdates(t *testing.T) {
	userID := uuid.New()
	params := map[string]string{"restaurantId": "1"}

	t.Run("Get - Success", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/carts/pending/1", nil, userID, params)
		rr := httptest.NewRecorder()

		mockCartService.On("PendingUpdates", mock.Anything, userID, "1").Return(restaurantCart().Items, nil).Once()

		cartHandler.GetPendingUpdates().ServeHTTP(rr, req)

		var items []models.CartLineItem
		_, err := testutils.DecodeResponse(rr.Body.Bytes(), &items)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, items, 1)
	})

	t.Run("Clear - Success", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/carts/pending/1", nil, userID, params)
		rr := httptest.NewRecorder()

		mockCartService.On("ClearPendingUpdates", mock.Anything, userID, "1").Return(nil).Once()

		cartHandler.ClearPendingUpdates().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Clear - Failure", func(t *testing.T) {
		mockCartService, cartHandler := setupCartTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/carts/pending/1", nil, userID, params)
		rr := httptest.NewRecorder()

		mockCartService.On("ClearPendingUpdates", mock.Anything, userID, "1").
			Return(appErrors.DatabaseError("Failed to clear pending cart updates").WithError(errors.New("redis down"))).Once()

		cartHandler.ClearPendingUpdates().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
