package service_test

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	cacheMocks "github.com/hlewluv/Food-Delivery-App-sub000/internal/cache/mocks"
	syncMocks "github.com/hlewluv/Food-Delivery-App-sub000/internal/cartsync/mocks"
	appErrors "github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	repoMocks "github.com/hlewluv/Food-Delivery-App-sub000/internal/repositories/mocks"
	service "github.com/hlewluv/Food-Delivery-App-sub000/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const cartTTL = time.Hour

type cartDeps struct {
	cache   *cacheMocks.Cache
	pending *repoMocks.PendingCartRepository
	syncer  *syncMocks.Syncer
	prober  *syncMocks.Prober
}

func setupCartServiceTest(t *testing.T) (service.CartService, cartDeps) {
	t.Helper()

	deps := cartDeps{
		cache:   cacheMocks.NewCache(t),
		pending: repoMocks.NewPendingCartRepository(t),
		syncer:  syncMocks.NewSyncer(t),
		prober:  syncMocks.NewProber(t),
	}

	return service.NewCartService(deps.cache, deps.pending, deps.syncer, deps.prober, cartTTL), deps
}

func cartKey(id uuid.UUID) string {
	return "cart:" + id.String()
}

func expectEmptySnapshot(deps cartDeps, customerID uuid.UUID) {
	deps.cache.On("Get", mock.Anything, cartKey(customerID), mock.AnythingOfType("*[]models.CartLineItem")).
		Return(false, nil).Once()
}

func bigMac() models.MenuItem {
	return models.MenuItem{ID: "big-mac", Name: "Big Mac", UnitPrice: decimal.NewFromInt(49000)}
}

func addBigMac(qty int) *models.AddItemRequest {
	return &models.AddItemRequest{Item: bigMac(), RestaurantID: "1", Quantity: qty}
}

func TestCartServiceAddItem(t *testing.T) {
	t.Run("Success - snapshots and syncs", func(t *testing.T) {
		// Arrange
		svc, deps := setupCartServiceTest(t)
		ctx := t.Context()
		customerID := uuid.New()

		expectEmptySnapshot(deps, customerID)
		deps.cache.On("Set", mock.Anything, cartKey(customerID), mock.AnythingOfType("[]models.CartLineItem"), cartTTL).
			Return(nil).Twice()
		deps.prober.On("Online", mock.Anything).Return(true).Twice()

		var (
			mu   sync.Mutex
			seqs []uint64
		)
		deps.syncer.On("Sync", mock.Anything, mock.MatchedBy(func(p *models.CartSyncPayload) bool {
			return p.CustomerID == customerID.String() && p.RestaurantID == "1" && len(p.Items) == 1
		})).Run(func(args mock.Arguments) {
			mu.Lock()
			seqs = append(seqs, args.Get(1).(*models.CartSyncPayload).Sequence)
			mu.Unlock()
		}).Return(nil).Twice()

		// Act
		_, err := svc.AddItem(ctx, customerID, addBigMac(1))
		require.NoError(t, err)
		view, err := svc.AddItem(ctx, customerID, addBigMac(2))
		require.NoError(t, err)
		svc.Wait()

		// Assert
		require.Len(t, view.Items, 1)
		assert.Equal(t, 3, view.TotalItems)
		assert.True(t, decimal.NewFromInt(147000).Equal(view.TotalPrice))

		slices.Sort(seqs)
		assert.Equal(t, []uint64{1, 2}, seqs)
	})

	t.Run("Offline - queues the full restaurant cart", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		customerID := uuid.New()

		expectEmptySnapshot(deps, customerID)
		deps.cache.On("Set", mock.Anything, cartKey(customerID), mock.Anything, cartTTL).Return(nil).Once()
		deps.prober.On("Online", mock.Anything).Return(false).Once()
		deps.pending.On("Save", mock.Anything, customerID, "1", mock.MatchedBy(func(items []models.CartLineItem) bool {
			return len(items) == 1 && items[0].Quantity == 2
		})).Return(nil).Once()

		_, err := svc.AddItem(t.Context(), customerID, addBigMac(2))
		svc.Wait()

		require.NoError(t, err)
		deps.syncer.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
	})

	t.Run("Sync failure does not fail the mutation", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		customerID := uuid.New()

		expectEmptySnapshot(deps, customerID)
		deps.cache.On("Set", mock.Anything, cartKey(customerID), mock.Anything, cartTTL).Return(errors.New("redis down")).Once()
		deps.prober.On("Online", mock.Anything).Return(true).Once()
		deps.syncer.On("Sync", mock.Anything, mock.Anything).Return(errors.New("503")).Once()

		view, err := svc.AddItem(t.Context(), customerID, addBigMac(1))
		svc.Wait()

		require.NoError(t, err)
		assert.Equal(t, 1, view.TotalItems)
	})

	t.Run("Failure - invalid line leaves cart untouched", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		customerID := uuid.New()

		expectEmptySnapshot(deps, customerID)

		req := addBigMac(1)
		req.Item.UnitPrice = decimal.NewFromInt(-1)

		view, err := svc.AddItem(t.Context(), customerID, req)

		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})
}

func TestCartServiceHydration(t *testing.T) {
	t.Run("Loads snapshot once for concurrent requests", func(t *testing.T) {
		// Arrange
		svc, deps := setupCartServiceTest(t)
		customerID := uuid.New()
		release := make(chan struct{})

		deps.cache.On("Get", mock.Anything, cartKey(customerID), mock.AnythingOfType("*[]models.CartLineItem")).
			Run(func(args mock.Arguments) {
				<-release
				*args.Get(2).(*[]models.CartLineItem) = []models.CartLineItem{{Item: bigMac(), RestaurantID: "1", Quantity: 4}}
			}).Return(true, nil).Once()

		// Act
		var wg sync.WaitGroup
		views := make([]*models.RestaurantCart, 8)

		for i := range views {
			wg.Add(1)
			go func() {
				defer wg.Done()
				views[i], _ = svc.GetRestaurantCart(t.Context(), customerID, "1")
			}()
		}

		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		// Assert
		for _, v := range views {
			require.NotNil(t, v)
			assert.Equal(t, 4, v.TotalItems)
		}
	})

	t.Run("Failure - cache error", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		customerID := uuid.New()

		deps.cache.On("Get", mock.Anything, cartKey(customerID), mock.Anything).Return(false, errors.New("redis down")).Once()

		view, err := svc.GetRestaurantCart(t.Context(), customerID, "1")

		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})

	t.Run("Carts are isolated per customer", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		alice, bob := uuid.New(), uuid.New()

		expectEmptySnapshot(deps, alice)
		expectEmptySnapshot(deps, bob)
		deps.cache.On("Set", mock.Anything, cartKey(alice), mock.Anything, cartTTL).Return(nil).Once()
		deps.prober.On("Online", mock.Anything).Return(true).Once()
		deps.syncer.On("Sync", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.AddItem(t.Context(), alice, addBigMac(1))
		require.NoError(t, err)
		view, err := svc.GetRestaurantCart(t.Context(), bob, "1")
		svc.Wait()

		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	t.Run("Update of a missing line is a silent no-op", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		customerID := uuid.New()

		expectEmptySnapshot(deps, customerID)

		view, err := svc.UpdateQuantity(t.Context(), customerID, &models.UpdateQuantityRequest{
			ItemID: "big-mac", RestaurantID: "1", Quantity: 5,
		})

		require.NoError(t, err)
		assert.Empty(t, view.Items)
		deps.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Remove without customisation drops every variant", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		customerID := uuid.New()
		spicy := "extra spicy"

		expectEmptySnapshot(deps, customerID)
		deps.cache.On("Set", mock.Anything, cartKey(customerID), mock.Anything, cartTTL).Return(nil).Times(3)
		deps.prober.On("Online", mock.Anything).Return(true).Times(3)
		deps.syncer.On("Sync", mock.Anything, mock.Anything).Return(nil).Times(3)

		_, err := svc.AddItem(t.Context(), customerID, addBigMac(1))
		require.NoError(t, err)

		custom := addBigMac(1)
		custom.SpecialRequest = spicy
		_, err = svc.AddItem(t.Context(), customerID, custom)
		require.NoError(t, err)

		view, err := svc.RemoveItem(t.Context(), customerID, &models.RemoveItemRequest{ItemID: "big-mac", RestaurantID: "1"})
		svc.Wait()

		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.True(t, view.TotalPrice.IsZero())
	})
}

func TestCartServicePendingUpdates(t *testing.T) {
	t.Run("Nothing queued returns an empty list", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		customerID := uuid.New()
		deps.pending.On("Load", mock.Anything, customerID, "1").Return(nil, nil).Once()

		items, err := svc.PendingUpdates(t.Context(), customerID, "1")

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("Failure - clear error", func(t *testing.T) {
		svc, deps := setupCartServiceTest(t)
		redisErr := errors.New("redis down")
		customerID := uuid.New()
		deps.pending.On("Clear", mock.Anything, customerID, "1").Return(redisErr).Once()

		err := svc.ClearPendingUpdates(t.Context(), customerID, "1")

		assert.ErrorIs(t, err, redisErr)
	})
}
