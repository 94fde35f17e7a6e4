package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cache"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cart"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/cartsync"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/metrics"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	repository "github.com/hlewluv/Food-Delivery-App-sub000/internal/repositories"
	"golang.org/x/sync/singleflight"
)

const (
	snapshotTimeout = 2 * time.Second
	syncTimeout     = 10 * time.Second
)

type CartService interface {
	GetRestaurantCart(ctx context.Context, customerID uuid.UUID, restaurantID string) (*models.RestaurantCart, error)
	AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.RestaurantCart, error)
	UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.RestaurantCart, error)
	RemoveItem(ctx context.Context, customerID uuid.UUID, req *models.RemoveItemRequest) (*models.RestaurantCart, error)
	// Cart returns the live cart model of a customer, hydrating it on first use.
	Cart(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error)
	PendingUpdates(ctx context.Context, customerID uuid.UUID, restaurantID string) ([]models.CartLineItem, error)
	ClearPendingUpdates(ctx context.Context, customerID uuid.UUID, restaurantID string) error
	// Wait blocks until every background sync started so far has finished.
	Wait()
}

type customerCart struct {
	cart *cart.Cart

	mu  sync.Mutex
	seq map[string]uint64
}

func (c *customerCart) nextSequence(restaurantID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq[restaurantID]++

	return c.seq[restaurantID]
}

type cartService struct {
	cache   cache.Cache
	pending repository.PendingCartRepository
	syncer  cartsync.Syncer
	prober  cartsync.Prober
	ttl     time.Duration

	mu    sync.RWMutex
	carts map[uuid.UUID]*customerCart
	group singleflight.Group
	wg    sync.WaitGroup
}

func NewCartService(c cache.Cache, pending repository.PendingCartRepository, syncer cartsync.Syncer, prober cartsync.Prober, ttl time.Duration) CartService {
	return &cartService{
		cache:   c,
		pending: pending,
		syncer:  syncer,
		prober:  prober,
		ttl:     ttl,
		carts:   make(map[uuid.UUID]*customerCart),
	}
}

func (s *cartService) Cart(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	cc, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return cc.cart, nil
}

func (s *cartService) GetRestaurantCart(ctx context.Context, customerID uuid.UUID, restaurantID string) (*models.RestaurantCart, error) {
	cc, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return cc.cart.View(restaurantID), nil
}

func (s *cartService) AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.RestaurantCart, error) {
	cc, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	line := models.CartLineItem{
		Item:            req.Item,
		RestaurantID:    req.RestaurantID,
		Quantity:        req.Quantity,
		SpecialRequest:  req.SpecialRequest,
		SelectedOptions: req.SelectedOptions,
	}

	if err := cc.cart.AddItem(line); err != nil {
		return nil, err
	}

	metrics.CartMutation("add")

	return cc.cart.View(req.RestaurantID), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.RestaurantCart, error) {
	cc, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if cc.cart.UpdateQuantity(req.ItemID, req.RestaurantID, req.Quantity, req.SpecialRequest, req.SelectedOptions) {
		metrics.CartMutation("update")
	}

	return cc.cart.View(req.RestaurantID), nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID uuid.UUID, req *models.RemoveItemRequest) (*models.RestaurantCart, error) {
	cc, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var custom *cart.Customization
	if req.SpecialRequest != nil || req.SelectedOptions != nil {
		custom = &cart.Customization{SelectedOptions: req.SelectedOptions}
		if req.SpecialRequest != nil {
			custom.SpecialRequest = *req.SpecialRequest
		}
	}

	if cc.cart.RemoveItem(req.ItemID, req.RestaurantID, custom) > 0 {
		metrics.CartMutation("remove")
	}

	return cc.cart.View(req.RestaurantID), nil
}

func (s *cartService) PendingUpdates(ctx context.Context, customerID uuid.UUID, restaurantID string) ([]models.CartLineItem, error) {
	items, err := s.pending.Load(ctx, customerID, restaurantID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to read pending cart updates").WithError(err)
	}

	if items == nil {
		items = []models.CartLineItem{}
	}

	return items, nil
}

func (s *cartService) ClearPendingUpdates(ctx context.Context, customerID uuid.UUID, restaurantID string) error {
	if err := s.pending.Clear(ctx, customerID, restaurantID); err != nil {
		return errors.DatabaseError("Failed to clear pending cart updates").WithError(err)
	}

	return nil
}

func (s *cartService) Wait() {
	s.wg.Wait()
}

// load returns the registered cart, hydrating it from the snapshot cache exactly once even
// when several requests for the same customer race.
func (s *cartService) load(ctx context.Context, customerID uuid.UUID) (*customerCart, error) {
	if cc, ok := s.lookup(customerID); ok {
		return cc, nil
	}

	v, err, _ := s.group.Do(customerID.String(), func() (any, error) {
		if cc, ok := s.lookup(customerID); ok {
			return cc, nil
		}

		var lines []models.CartLineItem

		if _, err := s.cache.Get(ctx, cache.Key(cache.CartKeyPrefix, customerID.String()), &lines); err != nil {
			return nil, errors.DatabaseError("Failed to load cart").WithError(err)
		}

		cc := &customerCart{
			cart: cart.New(lines...),
			seq:  make(map[string]uint64),
		}
		cc.cart.Subscribe(s.onChange(customerID, cc))

		s.mu.Lock()
		s.carts[customerID] = cc
		s.mu.Unlock()

		return cc, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*customerCart), nil
}

func (s *cartService) lookup(customerID uuid.UUID) (*customerCart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cc, ok := s.carts[customerID]

	return cc, ok
}

// onChange snapshots the whole cart and pushes the changed restaurant in the background.
func (s *cartService) onChange(customerID uuid.UUID, cc *customerCart) cart.Observer {
	return func(restaurantID string) {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		if err := s.cache.Set(ctx, cache.Key(cache.CartKeyPrefix, customerID.String()), cc.cart.Lines(), s.ttl); err != nil {
			slog.Warn("Failed to snapshot cart",
				slog.String("customerId", customerID.String()),
				slog.String("error", err.Error()))
		}

		payload := &models.CartSyncPayload{
			CustomerID:   customerID.String(),
			RestaurantID: restaurantID,
			Sequence:     cc.nextSequence(restaurantID),
			Items:        cc.cart.ItemsByRestaurant(restaurantID),
		}

		s.wg.Add(1)

		go func() {
			defer s.wg.Done()
			s.push(customerID, payload)
		}()
	}
}

func (s *cartService) push(customerID uuid.UUID, payload *models.CartSyncPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	logger := slog.With(
		slog.String("customerId", payload.CustomerID),
		slog.String("restaurantId", payload.RestaurantID),
		slog.Uint64("sequence", payload.Sequence),
	)

	if !s.prober.Online(ctx) {
		if err := s.pending.Save(ctx, customerID, payload.RestaurantID, payload.Items); err != nil {
			logger.Error("Failed to queue offline cart update", slog.String("error", err.Error()))
			metrics.CartSync("failed")

			return
		}

		logger.Info("Cart service unreachable, update queued")
		metrics.CartSync("queued")

		return
	}

	if err := s.syncer.Sync(ctx, payload); err != nil {
		logger.Warn("Cart sync failed", slog.String("error", err.Error()))
		metrics.CartSync("failed")

		return
	}

	metrics.CartSync("synced")
}
