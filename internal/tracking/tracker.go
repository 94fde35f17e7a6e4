// Package tracking advances placed orders through their fulfilment statuses.
package tracking

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
)

type Observer func(status models.OrderStatus)

// Next returns the status that follows s, or false when s is terminal or not part of the cycle.
func Next(s models.OrderStatus) (models.OrderStatus, bool) {
	i := slices.Index(models.StatusProgression, s)
	if i < 0 || i == len(models.StatusProgression)-1 {
		return s, false
	}

	return models.StatusProgression[i+1], true
}

// Tracker moves one order forward exactly one status per event read from its event source.
type Tracker struct {
	events <-chan time.Time

	mu        sync.RWMutex
	status    models.OrderStatus
	observers []Observer
}

func New(start models.OrderStatus, events <-chan time.Time) *Tracker {
	return &Tracker{status: start, events: events}
}

func (t *Tracker) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.observers = append(t.observers, o)
}

func (t *Tracker) Status() models.OrderStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.status
}

// Run returns nil once the order is delivered or the event source closes, and ctx.Err() when
// cancelled first.
func (t *Tracker) Run(ctx context.Context) error {
	for {
		if _, ok := Next(t.Status()); !ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-t.events:
			if !ok {
				return nil
			}

			t.advance()
		}
	}
}

func (t *Tracker) advance() {
	t.mu.Lock()

	next, ok := Next(t.status)
	if !ok {
		t.mu.Unlock()

		return
	}

	t.status = next
	observers := slices.Clone(t.observers)

	t.mu.Unlock()

	for _, o := range observers {
		o(next)
	}
}
