package model

import "time"

// OrderStatusRecord is the materialized "current state" row for one order.
// current_status always reflects the event with the greatest event_ts seen
// so far; previous_status is whatever current_status held before the last
// applied transition.
type OrderStatusRecord struct {
	LastUpdateTS   time.Time
	UpdatedAt      time.Time
	OrderID        string
	CurrentStatus  string
	CustomerID     *string
	PreviousStatus *string
}

// StatusUpdate is the winning event for one order within a materializer
// cycle, ready to be applied to the materialized table.
type StatusUpdate struct {
	EventTS    time.Time
	OrderID    string
	NewStatus  string
	CustomerID *string
	Position   int64
}

// StatusCount is one bucket of the current-status distribution.
type StatusCount struct {
	Status string
	Count  int64
}

// Order is a row of the order master. The master is loaded out of band;
// the materializer never writes it. Status records without a master row
// are reported as orphans by the validator.
type Order struct {
	CreatedAt  time.Time
	OrderID    string
	CustomerID *string
}
