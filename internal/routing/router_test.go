package routing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedProvider blocks each call until released, so tests can order completions.
type gatedProvider struct {
	started chan models.RouteRequest
	release chan *models.Route
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{started: make(chan models.RouteRequest), release: make(chan *models.Route)}
}

func (p *gatedProvider) Directions(ctx context.Context, req models.RouteRequest) (*models.Route, error) {
	p.started <- req
	return <-p.release, nil
}

type staticProvider struct {
	route *models.Route
	err   error
}

func (p staticProvider) Directions(context.Context, models.RouteRequest) (*models.Route, error) {
	return p.route, p.err
}

func TestRouterFetch(t *testing.T) {
	t.Run("Passes through the latest answer", func(t *testing.T) {
		want := &models.Route{DistanceKm: 1}
		router := routing.NewRouter(staticProvider{route: want})

		got, err := router.Fetch(t.Context(), router.Next(), routeReq)

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("Passes through provider errors", func(t *testing.T) {
		providerErr := errors.New("quota exceeded")
		router := routing.NewRouter(staticProvider{err: providerErr})

		_, err := router.Fetch(t.Context(), router.Next(), routeReq)

		assert.ErrorIs(t, err, providerErr)
	})

	t.Run("Late answer for an older request is discarded", func(t *testing.T) {
		// Arrange
		provider := newGatedProvider()
		router := routing.NewRouter(provider)

		type result struct {
			route *models.Route
			err   error
		}
		first := make(chan result, 1)
		second := make(chan result, 1)

		firstToken := router.Next()
		go func() {
			r, err := router.Fetch(context.Background(), firstToken, routeReq)
			first <- result{r, err}
		}()
		<-provider.started

		secondToken := router.Next()
		go func() {
			r, err := router.Fetch(context.Background(), secondToken, routeReq)
			second <- result{r, err}
		}()
		<-provider.started

		// Act: the newer request resolves first, the older one late
		provider.release <- &models.Route{DistanceKm: 2}
		provider.release <- &models.Route{DistanceKm: 1}

		// Assert
		a, b := <-first, <-second
		results := []result{a, b}
		var fresh, stale int
		for _, r := range results {
			if errors.Is(r.err, routing.ErrStaleRoute) {
				stale++
				assert.Nil(t, r.route)
			} else {
				fresh++
				require.NoError(t, r.err)
			}
		}
		assert.Equal(t, 1, fresh)
		assert.Equal(t, 1, stale)
		assert.ErrorIs(t, a.err, routing.ErrStaleRoute, "the first request was superseded")
	})

	t.Run("Invalidate drops the in-flight request", func(t *testing.T) {
		provider := newGatedProvider()
		router := routing.NewRouter(provider)
		done := make(chan error, 1)

		token := router.Next()
		go func() {
			_, err := router.Fetch(context.Background(), token, routeReq)
			done <- err
		}()
		<-provider.started

		router.Invalidate()
		provider.release <- &models.Route{}

		assert.ErrorIs(t, <-done, routing.ErrStaleRoute)
	})

	t.Run("Token taken before the goroutine runs decides the winner", func(t *testing.T) {
		router := routing.NewRouter(staticProvider{route: &models.Route{}})

		older := router.Next()
		newer := router.Next()

		_, err := router.Fetch(t.Context(), newer, routeReq)
		require.NoError(t, err)

		_, err = router.Fetch(t.Context(), older, routeReq)
		assert.ErrorIs(t, err, routing.ErrStaleRoute)
		assert.True(t, router.Current(newer))
	})
}

func TestBanner(t *testing.T) {
	assert.Equal(t, "", routing.Banner(nil))
	assert.Equal(t, "Unable to load route: no location", routing.Banner(errors.New("no location")))
}
