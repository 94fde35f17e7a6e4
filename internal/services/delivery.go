package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/delivery"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/metrics"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/routing"
)

const (
	routeFetchTimeout = 15 * time.Second
	noLocationBanner  = "Unable to load route: current location unavailable"
)

// CourierView is everything the courier app renders: the flow snapshot plus the map state.
type CourierView struct {
	delivery.Snapshot
	Location     *models.Location `json:"location,omitempty"`
	Route        *models.Route    `json:"route,omitempty"`
	RouteLoading bool             `json:"route_loading"`
	RouteError   string           `json:"route_error,omitempty"`
}

type DeliveryService interface {
	SetConnection(ctx context.Context, courierID uuid.UUID, connected bool) (*CourierView, error)
	UpdateLocation(ctx context.Context, courierID uuid.UUID, location models.Location) (*CourierView, error)
	Delivery(ctx context.Context, courierID uuid.UUID) (*CourierView, error)
	Act(ctx context.Context, courierID uuid.UUID, action delivery.Action) (*CourierView, error)
	// HandleOffer presents an order to the first connected idle courier, or holds it until one
	// becomes available.
	HandleOffer(ctx context.Context, order *models.DeliveryOrder) error
	// Wait blocks until every in-flight route lookup has finished.
	Wait()
}

type courier struct {
	id     uuid.UUID
	flow   *delivery.Flow
	router *routing.Router

	mu           sync.Mutex
	location     *models.Location
	route        *models.Route
	routeLoading bool
	routeErr     string
}

type deliveryService struct {
	provider routing.Provider
	mode     models.TravelMode

	mu       sync.Mutex
	couriers map[uuid.UUID]*courier
	roster   []uuid.UUID
	waiting  []*models.DeliveryOrder
	wg       sync.WaitGroup
}

func NewDeliveryService(provider routing.Provider, mode models.TravelMode) DeliveryService {
	return &deliveryService{
		provider: provider,
		mode:     mode,
		couriers: make(map[uuid.UUID]*courier),
	}
}

func (s *deliveryService) SetConnection(ctx context.Context, courierID uuid.UUID, connected bool) (*CourierView, error) {
	c := s.courier(courierID)
	c.flow.SetConnected(connected)

	if connected {
		s.offerWaiting(c)
	}

	return c.view(), nil
}

func (s *deliveryService) UpdateLocation(ctx context.Context, courierID uuid.UUID, location models.Location) (*CourierView, error) {
	c := s.courier(courierID)

	c.mu.Lock()
	c.location = &location
	degraded := c.routeErr == noLocationBanner
	c.mu.Unlock()

	// A route that could not be drawn for lack of a position is retried on the first fix.
	if target := c.flow.Snapshot().RouteTarget; target != nil && degraded {
		s.fetchRoute(c, *target)
	}

	return c.view(), nil
}

func (s *deliveryService) Delivery(ctx context.Context, courierID uuid.UUID) (*CourierView, error) {
	return s.courier(courierID).view(), nil
}

func (s *deliveryService) Act(ctx context.Context, courierID uuid.UUID, action delivery.Action) (*CourierView, error) {
	c := s.courier(courierID)
	declined := c.flow.Snapshot().Order

	var err error

	switch action {
	case delivery.ActionStart:
		err = c.flow.Start()
	case delivery.ActionArrive:
		err = c.flow.Arrive()
	case delivery.ActionComplete:
		err = c.flow.Complete()
	case delivery.ActionDismiss:
		err = c.flow.Dismiss()
	case delivery.ActionMinimize:
		err = c.flow.Minimize()
	case delivery.ActionRestore:
		err = c.flow.Restore()
	case delivery.ActionDecline:
		err = c.flow.Decline()
	case delivery.ActionBack:
		action, err = c.flow.Back()
	default:
		return nil, errors.BadRequestError("Unknown delivery action: " + string(action))
	}

	if err != nil {
		return nil, flowError(err)
	}

	switch action {
	case delivery.ActionDecline:
		if declined != nil {
			s.dispatch(declined, courierID)
		}
		s.offerWaiting(c)
	case delivery.ActionDismiss, delivery.ActionAbandon:
		s.offerWaiting(c)
	}

	return c.view(), nil
}

func (s *deliveryService) HandleOffer(ctx context.Context, order *models.DeliveryOrder) error {
	if order == nil || order.ID == "" {
		return errors.ValidationError("Offer without an order id")
	}

	s.dispatch(order, uuid.Nil)

	return nil
}

func (s *deliveryService) Wait() {
	s.wg.Wait()
}

// dispatch offers order to couriers in connection order, skipping exclude. Unplaced offers wait.
func (s *deliveryService) dispatch(order *models.DeliveryOrder, exclude uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.roster {
		if id == exclude {
			continue
		}

		if err := s.couriers[id].flow.Offer(order); err == nil {
			slog.Info("Delivery offered", slog.String("orderId", order.ID), slog.String("courierId", id.String()))

			return
		}
	}

	s.waiting = append(s.waiting, order)
	slog.Info("No idle courier, offer held", slog.String("orderId", order.ID), slog.Int("waiting", len(s.waiting)))
}

func (s *deliveryService) offerWaiting(c *courier) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.waiting) == 0 {
		return
	}

	if err := c.flow.Offer(s.waiting[0]); err == nil {
		s.waiting = slices.Delete(s.waiting, 0, 1)
	}
}

func (s *deliveryService) courier(id uuid.UUID) *courier {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.couriers[id]; ok {
		return c
	}

	c := &courier{
		id:     id,
		flow:   delivery.NewFlow(),
		router: routing.NewRouter(s.provider),
	}
	c.flow.Subscribe(s.onTransition(c))

	s.couriers[id] = c
	s.roster = append(s.roster, id)

	return c
}

func (s *deliveryService) onTransition(c *courier) delivery.Observer {
	return func(t delivery.Transition) {
		metrics.DeliveryTransition(string(t.Action))

		if !t.RouteChanged() {
			return
		}

		if t.To.RouteTarget == nil {
			c.mu.Lock()
			c.router.Invalidate()
			c.route, c.routeErr, c.routeLoading = nil, "", false
			c.mu.Unlock()

			return
		}

		s.fetchRoute(c, *t.To.RouteTarget)
	}
}

// fetchRoute never blocks the transition that triggered it; a missing fix leaves the map degraded.
func (s *deliveryService) fetchRoute(c *courier, target models.Location) {
	c.mu.Lock()

	if c.location == nil {
		c.router.Invalidate()
		c.route, c.routeErr, c.routeLoading = nil, noLocationBanner, false
		c.mu.Unlock()
		metrics.RouteFetch("skipped")

		return
	}

	req := models.RouteRequest{Origin: *c.location, Destination: target, Mode: s.mode}
	token := c.router.Next()
	c.route, c.routeErr, c.routeLoading = nil, "", true

	c.mu.Unlock()

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), routeFetchTimeout)
		defer cancel()

		route, err := c.router.Fetch(ctx, token, req)
		if stdErrors.Is(err, routing.ErrStaleRoute) {
			metrics.RouteFetch("stale")

			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()

		if !c.router.Current(token) {
			metrics.RouteFetch("stale")

			return
		}

		c.routeLoading = false

		if err != nil {
			c.routeErr = routing.Banner(err)
			metrics.RouteFetch("error")
			slog.Warn("Route fetch failed", slog.String("courierId", c.id.String()), slog.String("error", err.Error()))

			return
		}

		c.route = route
		metrics.RouteFetch("ok")
	}()
}

func (c *courier) view() *CourierView {
	v := &CourierView{Snapshot: c.flow.Snapshot()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.location != nil {
		loc := *c.location
		v.Location = &loc
	}

	v.Route = c.route
	v.RouteLoading = c.routeLoading
	v.RouteError = c.routeErr

	return v
}

func flowError(err error) error {
	switch {
	case stdErrors.Is(err, delivery.ErrInvalidTransition),
		stdErrors.Is(err, delivery.ErrOrderInProgress):
		return errors.ConflictError(err.Error()).WithError(err)
	case stdErrors.Is(err, delivery.ErrNotConnected):
		return errors.ConflictError("Courier is offline").WithError(err)
	}

	return errors.InternalError("Delivery flow failed").WithError(err)
}
