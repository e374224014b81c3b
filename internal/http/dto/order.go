package dto

import (
	"time"

	"orderpulse.app/pulse/internal/model"
)

type RegisterOrderRequest struct {
	OrderID    string  `json:"order_id" binding:"required"`
	CustomerID *string `json:"customer_id,omitempty"`
}

type OrderResponse struct {
	OrderID    string    `json:"order_id"`
	CustomerID *string   `json:"customer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderStatusResponse struct {
	OrderID        string    `json:"order_id"`
	CurrentStatus  string    `json:"current_status"`
	PreviousStatus *string   `json:"previous_status,omitempty"`
	CustomerID     *string   `json:"customer_id,omitempty"`
	LastUpdateTS   time.Time `json:"last_update_ts"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewOrderResponse(order *model.Order) OrderResponse {
	return OrderResponse{
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		CreatedAt:  order.CreatedAt,
	}
}

func NewOrderStatusResponse(rec *model.OrderStatusRecord) OrderStatusResponse {
	return OrderStatusResponse{
		OrderID:        rec.OrderID,
		CurrentStatus:  rec.CurrentStatus,
		PreviousStatus: rec.PreviousStatus,
		CustomerID:     rec.CustomerID,
		LastUpdateTS:   rec.LastUpdateTS,
		UpdatedAt:      rec.UpdatedAt,
	}
}
