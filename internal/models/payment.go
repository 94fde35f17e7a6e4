package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	UserID  uuid.UUID       `json:"user_id"`
	OrderID uuid.UUID       `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
}

type PaymentResponse struct {
	OrderURL string `json:"order_url"`
}
