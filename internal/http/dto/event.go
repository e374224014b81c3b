package dto

import "time"

type IngestEventRequest struct {
	OrderID    string    `json:"order_id" binding:"required"`
	NewStatus  string    `json:"new_status" binding:"required"`
	EventTS    time.Time `json:"event_ts" binding:"required"`
	CustomerID *string   `json:"customer_id,omitempty"`
}

type IngestEventResponse struct {
	EventID int64 `json:"event_id"`
	Lane    int   `json:"lane"`
}
