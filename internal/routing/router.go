package routing

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
)

// ErrStaleRoute is returned when a newer request was issued while this one was in flight.
var ErrStaleRoute = errors.New("route response superseded by a newer request")

// Router issues directions requests for one map and keeps only the latest answer.
// Tokens come from Next at the moment a request is issued, not when its goroutine runs.
type Router struct {
	provider Provider
	latest   atomic.Uint64
}

func NewRouter(provider Provider) *Router {
	return &Router{provider: provider}
}

// Next reserves the token for a new request and supersedes every earlier one.
func (r *Router) Next() uint64 {
	return r.latest.Add(1)
}

// Current reports whether token still belongs to the latest request.
func (r *Router) Current(token uint64) bool {
	return r.latest.Load() == token
}

func (r *Router) Fetch(ctx context.Context, token uint64, req models.RouteRequest) (*models.Route, error) {
	if !r.Current(token) {
		return nil, ErrStaleRoute
	}

	route, err := r.provider.Directions(ctx, req)

	if !r.Current(token) {
		return nil, ErrStaleRoute
	}

	return route, err
}

// Invalidate discards any in-flight request, used when the map loses its destination.
func (r *Router) Invalidate() {
	r.latest.Add(1)
}

// Banner is the message shown over the map when a route cannot be drawn.
func Banner(err error) string {
	if err == nil {
		return ""
	}

	return "Unable to load route: " + err.Error()
}
