package dto

import "orderpulse.app/pulse/internal/model"

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func NewStatusCountResponses(counts []model.StatusCount) []StatusCountResponse {
	out := make([]StatusCountResponse, len(counts))
	for i, c := range counts {
		out[i] = StatusCountResponse{Status: c.Status, Count: c.Count}
	}
	return out
}

func NewOrderStatusResponses(records []model.OrderStatusRecord) []OrderStatusResponse {
	out := make([]OrderStatusResponse, len(records))
	for i := range records {
		out[i] = NewOrderStatusResponse(&records[i])
	}
	return out
}
