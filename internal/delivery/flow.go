// Package delivery drives a courier through one active delivery at a time.
//
// A Flow moves Hidden → PresentingOffer → EnRouteToRestaurant → EnRouteToCustomer → Completed
// and back to Hidden. Every transition is an explicit courier action; observers receive the
// before and after snapshots so they can react to route target changes.
package delivery

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
)

type State string

const (
	StateHidden              State = "hidden"
	StatePresentingOffer     State = "presenting_offer"
	StateEnRouteToRestaurant State = "en_route_to_restaurant"
	StateEnRouteToCustomer   State = "en_route_to_customer"
	StateCompleted           State = "completed"
)

// Leg is the collapsed phase the courier apps render: which destination is active.
type Leg string

const (
	LegRestaurant Leg = "restaurant"
	LegCustomer   Leg = "customer"
)

type Action string

const (
	ActionOffer      Action = "offer"
	ActionDecline    Action = "decline"
	ActionStart      Action = "start"
	ActionArrive     Action = "arrive"
	ActionComplete   Action = "complete"
	ActionDismiss    Action = "dismiss"
	ActionMinimize   Action = "minimize"
	ActionRestore    Action = "restore"
	ActionBack       Action = "back"
	ActionConnection Action = "connection"
	ActionAbandon    Action = "abandon"
)

var (
	ErrInvalidTransition = errors.New("invalid delivery transition")
	ErrNotConnected      = errors.New("courier is not connected")
	ErrOrderInProgress   = errors.New("courier already has an order")
)

type Snapshot struct {
	State              State                 `json:"state"`
	Phase              Leg                   `json:"phase"`
	IsSuccess          bool                  `json:"is_success"`
	Minimized          bool                  `json:"minimized"`
	Connected          bool                  `json:"connected"`
	OfferVisible       bool                  `json:"offer_visible"`
	DetailsOpen        bool                  `json:"details_open"`
	ShowFloatingButton bool                  `json:"show_floating_button"`
	Order              *models.DeliveryOrder `json:"order,omitempty"`
	RouteTarget        *models.Location      `json:"route_target,omitempty"`
}

type Transition struct {
	Action Action
	From   Snapshot
	To     Snapshot
}

// RouteChanged reports whether the map destination differs between the two snapshots.
func (t Transition) RouteChanged() bool {
	a, b := t.From.RouteTarget, t.To.RouteTarget
	if a == nil || b == nil {
		return a != b
	}

	return *a != *b
}

type Observer func(Transition)

type Flow struct {
	mu        sync.Mutex
	state     State
	minimized bool
	connected bool
	order     *models.DeliveryOrder
	observers []Observer
}

func NewFlow() *Flow {
	return &Flow{state: StateHidden}
}

func (f *Flow) Subscribe(o Observer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.observers = append(f.observers, o)
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snapshotLocked()
}

// SetConnected toggles the courier's availability. Going offline cancels any order in hand.
func (f *Flow) SetConnected(connected bool) {
	f.apply(ActionConnection, func() error {
		f.connected = connected
		if !connected {
			f.resetLocked()
		}

		return nil
	})
}

// Offer presents a new order; only a connected courier without a current order accepts one.
func (f *Flow) Offer(order *models.DeliveryOrder) error {
	return f.apply(ActionOffer, func() error {
		switch {
		case !f.connected:
			return ErrNotConnected
		case f.state != StateHidden:
			return ErrOrderInProgress
		case order == nil:
			return fmt.Errorf("%w: offer without an order", ErrInvalidTransition)
		}

		f.order = cloneOrder(order)
		f.state = StatePresentingOffer

		return nil
	})
}

func (f *Flow) Decline() error {
	return f.apply(ActionDecline, func() error {
		if err := f.requireLocked(ActionDecline, StatePresentingOffer); err != nil {
			return err
		}
		f.resetLocked()

		return nil
	})
}

func (f *Flow) Start() error {
	return f.apply(ActionStart, func() error {
		if err := f.requireLocked(ActionStart, StatePresentingOffer); err != nil {
			return err
		}
		f.state = StateEnRouteToRestaurant
		f.minimized = false

		return nil
	})
}

// Arrive switches the active leg to the customer. The details stay open.
func (f *Flow) Arrive() error {
	return f.apply(ActionArrive, func() error {
		if err := f.requireOpenLocked(ActionArrive, StateEnRouteToRestaurant); err != nil {
			return err
		}
		f.state = StateEnRouteToCustomer

		return nil
	})
}

func (f *Flow) Complete() error {
	return f.apply(ActionComplete, func() error {
		if err := f.requireOpenLocked(ActionComplete, StateEnRouteToCustomer); err != nil {
			return err
		}
		f.state = StateCompleted

		return nil
	})
}

func (f *Flow) Dismiss() error {
	return f.apply(ActionDismiss, func() error {
		if err := f.requireLocked(ActionDismiss, StateCompleted); err != nil {
			return err
		}
		f.resetLocked()

		return nil
	})
}

func (f *Flow) Minimize() error {
	return f.apply(ActionMinimize, func() error {
		if err := f.requireOpenLocked(ActionMinimize, StateEnRouteToRestaurant, StateEnRouteToCustomer); err != nil {
			return err
		}
		f.minimized = true

		return nil
	})
}

func (f *Flow) Restore() error {
	return f.apply(ActionRestore, func() error {
		if err := f.requireLocked(ActionRestore, StateEnRouteToRestaurant, StateEnRouteToCustomer); err != nil {
			return err
		}
		if !f.minimized {
			return fmt.Errorf("%w: %s while details are open", ErrInvalidTransition, ActionRestore)
		}
		f.minimized = false

		return nil
	})
}

// Back mirrors the hardware back button. While the details are open it minimizes them; while
// minimized it abandons the delivery entirely, clearing route and order.
func (f *Flow) Back() (Action, error) {
	var taken Action

	err := f.apply(ActionBack, func() error {
		switch f.state {
		case StatePresentingOffer:
			taken = ActionDecline
			f.resetLocked()
		case StateCompleted:
			taken = ActionDismiss
			f.resetLocked()
		case StateEnRouteToRestaurant, StateEnRouteToCustomer:
			if f.minimized {
				taken = ActionAbandon
				f.resetLocked()
			} else {
				taken = ActionMinimize
				f.minimized = true
			}
		default:
			return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ActionBack, f.state)
		}

		return nil
	})

	return taken, err
}

func (f *Flow) apply(action Action, mutate func() error) error {
	f.mu.Lock()

	from := f.snapshotLocked()
	if err := mutate(); err != nil {
		f.mu.Unlock()
		return err
	}
	to := f.snapshotLocked()
	observers := slices.Clone(f.observers)

	f.mu.Unlock()

	t := Transition{Action: action, From: from, To: to}
	for _, o := range observers {
		o(t)
	}

	return nil
}

func (f *Flow) requireLocked(action Action, allowed ...State) error {
	if !slices.Contains(allowed, f.state) {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, f.state)
	}

	return nil
}

func (f *Flow) requireOpenLocked(action Action, allowed ...State) error {
	if err := f.requireLocked(action, allowed...); err != nil {
		return err
	}
	if f.minimized {
		return fmt.Errorf("%w: %s while minimized", ErrInvalidTransition, action)
	}

	return nil
}

func (f *Flow) resetLocked() {
	f.state = StateHidden
	f.minimized = false
	f.order = nil
}

func (f *Flow) snapshotLocked() Snapshot {
	s := Snapshot{
		State:     f.state,
		Phase:     LegRestaurant,
		Minimized: f.minimized,
		Connected: f.connected,
	}

	if f.order != nil {
		s.Order = cloneOrder(f.order)
	}

	switch f.state {
	case StateHidden:
		s.ShowFloatingButton = true
	case StatePresentingOffer:
		s.OfferVisible = true
		s.ShowFloatingButton = true
	case StateEnRouteToRestaurant:
		s.RouteTarget = locationPtr(f.order.Restaurant.Location)
	case StateEnRouteToCustomer:
		s.Phase = LegCustomer
		s.RouteTarget = locationPtr(f.order.Customer.Location)
	case StateCompleted:
		s.Phase = LegCustomer
		s.IsSuccess = true
	}

	if f.state == StateEnRouteToRestaurant || f.state == StateEnRouteToCustomer {
		s.DetailsOpen = !f.minimized
		s.ShowFloatingButton = f.minimized
	}

	return s
}

func locationPtr(l models.Location) *models.Location {
	return &l
}

// cloneOrder copies the order deeply enough that no caller shares its slices or pointers.
func cloneOrder(order *models.DeliveryOrder) *models.DeliveryOrder {
	o := *order

	o.Items = slices.Clone(order.Items)
	for i := range o.Items {
		menu := slices.Clone(o.Items[i].OptionMenu)
		for j := range menu {
			menu[j].Choices = slices.Clone(menu[j].Choices)
		}
		o.Items[i].OptionMenu = menu
	}

	if order.DistanceKm != nil {
		d := *order.DistanceKm
		o.DistanceKm = &d
	}

	if order.Earnings != nil {
		e := *order.Earnings
		o.Earnings = &e
	}

	return &o
}
