package delivery_test

import (
	"testing"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/delivery"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	restaurantLoc = models.Location{Lat: 10.7769, Lng: 106.7009}
	customerLoc   = models.Location{Lat: 10.7626, Lng: 106.6602}
)

func testOrder() *models.DeliveryOrder {
	return &models.DeliveryOrder{
		ID:         "ord-1",
		Restaurant: models.Party{Name: "McDonald's", Address: "2 Ton Duc Thang", Location: restaurantLoc},
		Customer:   models.Party{Name: "Lan", Address: "227 Nguyen Van Cu", Location: customerLoc},
		Items: []models.DeliveryOrderItem{
			{ID: "1", FoodName: "Big Mac", FoodType: "burger", Price: decimal.NewFromInt(49000)},
		},
		Total:         decimal.NewFromInt(64000),
		PaymentMethod: models.PaymentMethodCash,
	}
}

// offeredFlow returns a connected flow presenting testOrder.
func offeredFlow(t *testing.T) *delivery.Flow {
	t.Helper()

	f := delivery.NewFlow()
	f.SetConnected(true)
	require.NoError(t, f.Offer(testOrder()))

	return f
}

func TestHappyPath(t *testing.T) {
	f := offeredFlow(t)

	s := f.Snapshot()
	assert.Equal(t, delivery.StatePresentingOffer, s.State)
	assert.True(t, s.OfferVisible)
	assert.Nil(t, s.RouteTarget)

	// Start
	require.NoError(t, f.Start())
	s = f.Snapshot()
	assert.Equal(t, delivery.StateEnRouteToRestaurant, s.State)
	assert.Equal(t, delivery.LegRestaurant, s.Phase)
	assert.True(t, s.DetailsOpen)
	assert.False(t, s.ShowFloatingButton)
	require.NotNil(t, s.RouteTarget)
	assert.Equal(t, restaurantLoc, *s.RouteTarget)

	// Arrive
	require.NoError(t, f.Arrive())
	s = f.Snapshot()
	assert.Equal(t, delivery.StateEnRouteToCustomer, s.State)
	assert.Equal(t, delivery.LegCustomer, s.Phase)
	assert.True(t, s.DetailsOpen, "arriving keeps the details open")
	require.NotNil(t, s.RouteTarget)
	assert.Equal(t, customerLoc, *s.RouteTarget)

	// Complete
	require.NoError(t, f.Complete())
	s = f.Snapshot()
	assert.Equal(t, delivery.StateCompleted, s.State)
	assert.True(t, s.IsSuccess)
	assert.Nil(t, s.RouteTarget)

	// Dismiss
	require.NoError(t, f.Dismiss())
	s = f.Snapshot()
	assert.Equal(t, delivery.StateHidden, s.State)
	assert.Equal(t, delivery.LegRestaurant, s.Phase)
	assert.Nil(t, s.Order)
	assert.True(t, s.ShowFloatingButton)
	assert.False(t, s.DetailsOpen)
	assert.True(t, s.Connected)

	// ready for the next offer
	require.NoError(t, f.Offer(testOrder()))
}

func TestOfferPreconditions(t *testing.T) {
	t.Run("Not connected", func(t *testing.T) {
		f := delivery.NewFlow()

		err := f.Offer(testOrder())

		assert.ErrorIs(t, err, delivery.ErrNotConnected)
		assert.Equal(t, delivery.StateHidden, f.Snapshot().State)
	})

	t.Run("Already has an order", func(t *testing.T) {
		f := offeredFlow(t)

		err := f.Offer(testOrder())

		assert.ErrorIs(t, err, delivery.ErrOrderInProgress)
	})

	t.Run("Nil order", func(t *testing.T) {
		f := delivery.NewFlow()
		f.SetConnected(true)

		assert.ErrorIs(t, f.Offer(nil), delivery.ErrInvalidTransition)
	})
}

func TestForwardTransitionsAreMonotonic(t *testing.T) {
	t.Run("Restaurant leg cannot complete", func(t *testing.T) {
		f := offeredFlow(t)
		require.NoError(t, f.Start())

		assert.ErrorIs(t, f.Complete(), delivery.ErrInvalidTransition)
		assert.ErrorIs(t, f.Dismiss(), delivery.ErrInvalidTransition)
		assert.ErrorIs(t, f.Start(), delivery.ErrInvalidTransition)
		assert.Equal(t, delivery.StateEnRouteToRestaurant, f.Snapshot().State)
	})

	t.Run("Customer leg only completes", func(t *testing.T) {
		f := offeredFlow(t)
		require.NoError(t, f.Start())
		require.NoError(t, f.Arrive())

		assert.ErrorIs(t, f.Arrive(), delivery.ErrInvalidTransition)
		assert.ErrorIs(t, f.Start(), delivery.ErrInvalidTransition)
		assert.ErrorIs(t, f.Dismiss(), delivery.ErrInvalidTransition)
		assert.Equal(t, delivery.StateEnRouteToCustomer, f.Snapshot().State)
	})

	t.Run("Hidden rejects courier actions", func(t *testing.T) {
		f := delivery.NewFlow()

		for _, act := range []func() error{f.Start, f.Arrive, f.Complete, f.Dismiss, f.Minimize, f.Restore, f.Decline} {
			assert.ErrorIs(t, act(), delivery.ErrInvalidTransition)
		}
	})
}

func TestMinimizeRestoreRoundTrip(t *testing.T) {
	for _, arrived := range []bool{false, true} {
		f := offeredFlow(t)
		require.NoError(t, f.Start())
		if arrived {
			require.NoError(t, f.Arrive())
		}
		before := f.Snapshot()

		require.NoError(t, f.Minimize())
		minimized := f.Snapshot()
		assert.True(t, minimized.Minimized)
		assert.False(t, minimized.DetailsOpen)
		assert.True(t, minimized.ShowFloatingButton)
		assert.Equal(t, before.RouteTarget, minimized.RouteTarget, "minimizing keeps the route")
		assert.Equal(t, before.State, minimized.State)

		assert.ErrorIs(t, f.Arrive(), delivery.ErrInvalidTransition, "actions need the details open")
		assert.ErrorIs(t, f.Minimize(), delivery.ErrInvalidTransition)

		require.NoError(t, f.Restore())
		assert.Equal(t, before, f.Snapshot())
		assert.ErrorIs(t, f.Restore(), delivery.ErrInvalidTransition)
	}
}

func TestBack(t *testing.T) {
	t.Run("Open then minimized abandons", func(t *testing.T) {
		f := offeredFlow(t)
		require.NoError(t, f.Start())

		action, err := f.Back()
		require.NoError(t, err)
		assert.Equal(t, delivery.ActionMinimize, action)
		assert.True(t, f.Snapshot().Minimized)

		action, err = f.Back()
		require.NoError(t, err)
		assert.Equal(t, delivery.ActionAbandon, action)

		s := f.Snapshot()
		assert.Equal(t, delivery.StateHidden, s.State)
		assert.Nil(t, s.Order)
		assert.Nil(t, s.RouteTarget)
	})

	t.Run("Offer declines", func(t *testing.T) {
		f := offeredFlow(t)

		action, err := f.Back()

		require.NoError(t, err)
		assert.Equal(t, delivery.ActionDecline, action)
		assert.Equal(t, delivery.StateHidden, f.Snapshot().State)
	})

	t.Run("Hidden is invalid", func(t *testing.T) {
		_, err := delivery.NewFlow().Back()

		assert.ErrorIs(t, err, delivery.ErrInvalidTransition)
	})
}

func TestDisconnectClearsOrder(t *testing.T) {
	f := offeredFlow(t)
	require.NoError(t, f.Start())

	f.SetConnected(false)

	s := f.Snapshot()
	assert.Equal(t, delivery.StateHidden, s.State)
	assert.False(t, s.Connected)
	assert.Nil(t, s.Order)
	assert.ErrorIs(t, f.Offer(testOrder()), delivery.ErrNotConnected)
}

func TestObservers(t *testing.T) {
	f := delivery.NewFlow()
	var transitions []delivery.Transition
	f.Subscribe(func(tr delivery.Transition) { transitions = append(transitions, tr) })

	f.SetConnected(true)
	require.NoError(t, f.Offer(testOrder()))
	require.NoError(t, f.Start())
	require.NoError(t, f.Minimize())
	require.NoError(t, f.Restore())
	require.NoError(t, f.Arrive())
	require.NoError(t, f.Complete())
	assert.Error(t, f.Complete())

	require.Len(t, transitions, 7, "failed transitions are not published")

	var routeChanges []delivery.Action
	for _, tr := range transitions {
		if tr.RouteChanged() {
			routeChanges = append(routeChanges, tr.Action)
		}
	}
	assert.Equal(t, []delivery.Action{delivery.ActionStart, delivery.ActionArrive, delivery.ActionComplete}, routeChanges)
}

func TestOfferIsCopied(t *testing.T) {
	f := delivery.NewFlow()
	f.SetConnected(true)
	order := testOrder()
	require.NoError(t, f.Offer(order))

	order.ID = "changed"
	order.Items[0].FoodName = "changed"

	assert.Equal(t, "ord-1", f.Snapshot().Order.ID)
	assert.Equal(t, "Big Mac", f.Snapshot().Order.Items[0].FoodName)
}

func TestSnapshotOrderIsCopied(t *testing.T) {
	order := testOrder()
	order.Items[0].OptionMenu = []models.OptionSelection{{Group: "Size", Choices: []string{"L"}}}
	earnings := decimal.NewFromInt(12000)
	order.Earnings = &earnings

	f := delivery.NewFlow()
	f.SetConnected(true)
	require.NoError(t, f.Offer(order))

	first := f.Snapshot().Order
	first.Items[0].FoodName = "changed"
	first.Items[0].OptionMenu[0].Choices[0] = "S"
	*first.Earnings = decimal.NewFromInt(1)

	second := f.Snapshot().Order
	assert.Equal(t, "Big Mac", second.Items[0].FoodName)
	assert.Equal(t, []string{"L"}, second.Items[0].OptionMenu[0].Choices)
	assert.True(t, decimal.NewFromInt(12000).Equal(*second.Earnings))
}
