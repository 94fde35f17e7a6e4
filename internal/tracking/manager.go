package tracking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cache"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
)

// StatusStore persists status changes made by trackers.
type StatusStore interface {
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}

// EventSource builds the tick stream that drives one tracker, plus a func releasing it.
type EventSource func() (<-chan time.Time, func())

// TickerSource returns an EventSource ticking every interval.
func TickerSource(interval time.Duration) EventSource {
	return func() (<-chan time.Time, func()) {
		ticker := time.NewTicker(interval)

		return ticker.C, ticker.Stop
	}
}

// Manager runs one Tracker per order and mirrors every status into the store and the cache.
type Manager struct {
	store  StatusStore
	cache  cache.Cache
	source EventSource

	mu       sync.Mutex
	trackers map[uuid.UUID]*Tracker
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewManager(store StatusStore, c cache.Cache, source EventSource) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		store:    store,
		cache:    c,
		source:   source,
		trackers: make(map[uuid.UUID]*Tracker),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Track starts advancing orderID from status. Tracking an order twice is a no-op.
func (m *Manager) Track(orderID uuid.UUID, from models.OrderStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trackers[orderID]; ok {
		return
	}

	events, release := m.source()
	tracker := New(from, events)
	tracker.Subscribe(m.record(orderID))
	m.trackers[orderID] = tracker

	m.wg.Add(1)

	go func() {
		defer m.wg.Done()
		defer release()

		if err := tracker.Run(m.ctx); err != nil && m.ctx.Err() == nil {
			slog.Error("Order tracking stopped", slog.String("orderId", orderID.String()), slog.String("error", err.Error()))
		}

		m.mu.Lock()
		delete(m.trackers, orderID)
		m.mu.Unlock()
	}()
}

// Status returns the live status of a tracked order, falling back to the cache.
func (m *Manager) Status(ctx context.Context, orderID uuid.UUID) (models.OrderStatus, bool) {
	m.mu.Lock()
	tracker, ok := m.trackers[orderID]
	m.mu.Unlock()

	if ok {
		return tracker.Status(), true
	}

	var status models.OrderStatus

	found, err := m.cache.Get(ctx, cache.Key(cache.OrderStatusKeyPrefix, orderID.String()), &status)
	if err != nil {
		slog.Warn("Failed to read cached order status", slog.String("orderId", orderID.String()), slog.String("error", err.Error()))

		return "", false
	}

	return status, found
}

// Shutdown stops every tracker and waits for them to exit.
func (m *Manager) Shutdown() {
	m.cancel()
	m.wg.Wait()
}

func (m *Manager) record(orderID uuid.UUID) Observer {
	return func(status models.OrderStatus) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger := slog.With(slog.String("orderId", orderID.String()), slog.String("status", string(status)))

		if err := m.cache.Set(ctx, cache.Key(cache.OrderStatusKeyPrefix, orderID.String()), status, 0); err != nil {
			logger.Warn("Failed to cache order status", slog.String("error", err.Error()))
		}

		if err := m.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
			logger.Error("Failed to persist order status", slog.String("error", err.Error()))

			return
		}

		logger.Info("Order status advanced")
	}
}
