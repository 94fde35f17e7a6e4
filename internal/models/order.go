package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentMethod string

const (
	OrderStatusQueued     OrderStatus = "queued"
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"

	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodZaloPay PaymentMethod = "zalopay"
	PaymentMethodCard    PaymentMethod = "card"
)

// StatusProgression is the order a placed order moves through on the confirmation screen.
var StatusProgression = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusDelivering,
	OrderStatusDelivered,
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodZaloPay, PaymentMethodCard:
		return true
	}

	return false
}

// RequiresRedirect reports whether the method is settled through an external payment page.
func (m PaymentMethod) RequiresRedirect() bool {
	return m == PaymentMethodZaloPay || m == PaymentMethodCard
}

type Order struct {
	ID                   uuid.UUID       `json:"id"`
	CustomerID           uuid.UUID       `json:"customer_id"`
	Items                []CartLineItem  `json:"items"`
	RestaurantID         string          `json:"restaurant_id"`
	RestaurantName       string          `json:"restaurant_name"`
	RestaurantImage      string          `json:"restaurant_image,omitempty"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	ShippingFee          decimal.Decimal `json:"shipping_fee"`
	Discount             decimal.Decimal `json:"discount"`
	Total                decimal.Decimal `json:"total"`
	PaymentMethod        PaymentMethod   `json:"payment_method"`
	DeliveryInstructions string          `json:"delivery_instructions,omitempty"`
	Address              string          `json:"address"`
	Status               OrderStatus     `json:"status"`
	PaymentURL           string          `json:"payment_url,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

type CheckoutRequest struct {
	RestaurantID    string `json:"restaurant_id" validate:"required"`
	RestaurantName  string `json:"restaurant_name" validate:"required"`
	RestaurantImage string `json:"restaurant_image"`
	// ShippingFee falls back to the configured default when omitted.
	ShippingFee          *decimal.Decimal `json:"shipping_fee,omitempty"`
	Discount             decimal.Decimal  `json:"discount"`
	PaymentMethod        PaymentMethod    `json:"payment_method" validate:"required,oneof=cash zalopay card"`
	DeliveryInstructions string           `json:"delivery_instructions" validate:"max=500"`
	Address              string           `json:"address" validate:"required"`
	Email                string           `json:"email" validate:"omitempty,email"`

	// Courier-facing details carried on the dispatch event only.
	RestaurantAddress  string    `json:"restaurant_address"`
	RestaurantLocation *Location `json:"restaurant_location,omitempty"`
	CustomerName       string    `json:"customer_name"`
	CustomerPhone      string    `json:"customer_phone"`
	DeliveryLocation   *Location `json:"delivery_location,omitempty"`
}

type CheckoutResponse struct {
	Order   *Order `json:"order"`
	Pending bool   `json:"pending"`
	Notice  string `json:"notice,omitempty"`
}

type OrderHistoryResponse struct {
	Orders []*Order `json:"orders"`
	Total  int      `json:"total"`
	Page   int      `json:"page"`
	Size   int      `json:"size"`
}

type OrderStatusResponse struct {
	OrderID uuid.UUID   `json:"order_id"`
	Status  OrderStatus `json:"status"`
}
