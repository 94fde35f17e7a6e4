package models

import (
	"github.com/shopspring/decimal"
)

// Option is a customisation a customer can pick for a menu item, priced as a surcharge.
type Option struct {
	ID        string          `json:"id" validate:"required"`
	Name      string          `json:"name"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

type MenuItem struct {
	ID               string          `json:"id" validate:"required"`
	Name             string          `json:"name" validate:"required"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ImageRef         string          `json:"image_ref,omitempty"`
	AvailableOptions []Option        `json:"available_options,omitempty"`
}

type CartLineItem struct {
	Item            MenuItem `json:"item"`
	RestaurantID    string   `json:"restaurant_id"`
	Quantity        int      `json:"quantity"`
	SpecialRequest  string   `json:"special_request"`
	SelectedOptions []Option `json:"selected_options"`
}

// UnitTotal is the base price plus every selected surcharge.
func (l CartLineItem) UnitTotal() decimal.Decimal {
	total := l.Item.UnitPrice
	for _, opt := range l.SelectedOptions {
		total = total.Add(opt.Surcharge)
	}

	return total
}

func (l CartLineItem) LineTotal() decimal.Decimal {
	return l.UnitTotal().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type AddItemRequest struct {
	Item            MenuItem `json:"item" validate:"required"`
	RestaurantID    string   `json:"restaurant_id" validate:"required"`
	Quantity        int      `json:"quantity" validate:"required,min=1"`
	SpecialRequest  string   `json:"special_request" validate:"max=500"`
	SelectedOptions []Option `json:"selected_options" validate:"dive"`
}

type UpdateQuantityRequest struct {
	ItemID          string   `json:"item_id" validate:"required"`
	RestaurantID    string   `json:"restaurant_id" validate:"required"`
	Quantity        int      `json:"quantity"`
	SpecialRequest  string   `json:"special_request"`
	SelectedOptions []Option `json:"selected_options"`
}

// RemoveItemRequest without special_request and selected_options removes every customisation of the item.
type RemoveItemRequest struct {
	ItemID          string   `json:"item_id" validate:"required"`
	RestaurantID    string   `json:"restaurant_id" validate:"required"`
	SpecialRequest  *string  `json:"special_request,omitempty"`
	SelectedOptions []Option `json:"selected_options,omitempty"`
}

type RestaurantCart struct {
	RestaurantID string          `json:"restaurant_id"`
	Items        []CartLineItem  `json:"items"`
	TotalItems   int             `json:"total_items"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// CartSyncPayload is the full-replace document pushed to the remote cart service.
type CartSyncPayload struct {
	CustomerID   string         `json:"customer_id"`
	RestaurantID string         `json:"restaurant_id"`
	Sequence     uint64         `json:"sequence"`
	Items        []CartLineItem `json:"items"`
}
