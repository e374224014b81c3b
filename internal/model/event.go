package model

import "time"

// Event is one immutable status change for one order. Once appended to the
// log it is never updated or deleted; duplicates of the same logical event
// may appear at different positions and downstream code must tolerate that.
type Event struct {
	EventTS    time.Time
	ReceivedAt time.Time
	OrderID    string
	NewStatus  string
	CustomerID *string
	Position   int64
	EventID    int64
	Lane       int
}

// EventLogStats summarizes the raw log for monitoring.
type EventLogStats struct {
	LatestEventTS  *time.Time
	TotalEvents    int64
	DistinctOrders int64
}
