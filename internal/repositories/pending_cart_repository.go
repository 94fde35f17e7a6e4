package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/redis/go-redis/v9"
)

// PendingCartRepository is the durable offline queue: one full cart payload per customer and
// restaurant, written when the remote service cannot be reached and read back by reconciliation.
type PendingCartRepository interface {
	Save(ctx context.Context, customerID uuid.UUID, restaurantID string, items []models.CartLineItem) error
	Load(ctx context.Context, customerID uuid.UUID, restaurantID string) ([]models.CartLineItem, error)
	Clear(ctx context.Context, customerID uuid.UUID, restaurantID string) error
}

type pendingCartRepository struct {
	client *redis.Client
}

func NewPendingCartRepo(client *redis.Client) PendingCartRepository {
	return &pendingCartRepository{client: client}
}

func PendingCartKey(customerID uuid.UUID, restaurantID string) string {
	return "pendingCartUpdates_" + customerID.String() + "_" + restaurantID
}

// Save overwrites the pending payload; a later resync always carries the full state.
func (r *pendingCartRepository) Save(ctx context.Context, customerID uuid.UUID, restaurantID string, items []models.CartLineItem) error {
	if items == nil {
		items = []models.CartLineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal pending cart: %w", err)
	}

	if err := r.client.Set(ctx, PendingCartKey(customerID, restaurantID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to queue pending cart for restaurant %s: %w", restaurantID, err)
	}

	return nil
}

// Load returns nil, nil when nothing is queued.
func (r *pendingCartRepository) Load(ctx context.Context, customerID uuid.UUID, restaurantID string) ([]models.CartLineItem, error) {
	data, err := r.client.Get(ctx, PendingCartKey(customerID, restaurantID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read pending cart for restaurant %s: %w", restaurantID, err)
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending cart: %w", err)
	}

	return items, nil
}

func (r *pendingCartRepository) Clear(ctx context.Context, customerID uuid.UUID, restaurantID string) error {
	if err := r.client.Del(ctx, PendingCartKey(customerID, restaurantID)).Err(); err != nil {
		return fmt.Errorf("failed to clear pending cart for restaurant %s: %w", restaurantID, err)
	}

	return nil
}
