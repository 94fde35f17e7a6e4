package models

import (
	"github.com/shopspring/decimal"
)

type Location struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type Party struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Phone    string   `json:"phone,omitempty"`
	Location Location `json:"location"`
}

type OptionSelection struct {
	Group   string   `json:"group"`
	Choices []string `json:"choices"`
}

type DeliveryOrderItem struct {
	ID          string            `json:"id"`
	FoodName    string            `json:"food_name"`
	FoodType    string            `json:"food_type"`
	Quantity    int               `json:"quantity"`
	Description string            `json:"description,omitempty"`
	OptionMenu  []OptionSelection `json:"option_menu,omitempty"`
	Price       decimal.Decimal   `json:"price"`
}

// DeliveryOrder is the courier's view of an order; it is not the customer's Order.
type DeliveryOrder struct {
	ID            string              `json:"id"`
	Restaurant    Party               `json:"restaurant"`
	Customer      Party               `json:"customer"`
	Items         []DeliveryOrderItem `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod PaymentMethod       `json:"payment_method"`
	DistanceKm    *float64            `json:"distance_km,omitempty"`
	Earnings      *decimal.Decimal    `json:"earnings,omitempty"`
}

type TravelMode string

const (
	TravelModeDriving TravelMode = "driving"
	TravelModeBicycle TravelMode = "bicycling"
)

type RouteRequest struct {
	Origin      Location   `json:"origin"`
	Destination Location   `json:"destination"`
	Mode        TravelMode `json:"mode"`
}

type Route struct {
	DistanceKm  float64    `json:"distance_km"`
	DurationMin float64    `json:"duration_min"`
	Coordinates []Location `json:"coordinates"`
}

type ConnectionRequest struct {
	Connected bool `json:"connected"`
}

type LocationUpdateRequest struct {
	Location Location `json:"location" validate:"required"`
}
