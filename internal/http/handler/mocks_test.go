package handler_test

import (
	"context"

	"orderpulse.app/pulse/internal/model"
	"orderpulse.app/pulse/internal/service"
	"orderpulse.app/pulse/internal/store"
	"orderpulse.app/pulse/internal/validator"
)

type mockIngestService struct {
	ingestFn        func(ctx context.Context, params service.IngestParams) (*service.IngestResult, error)
	registerOrderFn func(ctx context.Context, orderID string, customerID *string) (*model.Order, error)
}

func (m *mockIngestService) Ingest(ctx context.Context, params service.IngestParams) (*service.IngestResult, error) {
	if m.ingestFn != nil {
		return m.ingestFn(ctx, params)
	}
	return &service.IngestResult{}, nil
}

func (m *mockIngestService) RegisterOrder(ctx context.Context, orderID string, customerID *string) (*model.Order, error) {
	if m.registerOrderFn != nil {
		return m.registerOrderFn(ctx, orderID, customerID)
	}
	return &model.Order{OrderID: orderID, CustomerID: customerID}, nil
}

func (m *mockIngestService) Metrics() service.IngestMetricsSnapshot {
	return service.IngestMetricsSnapshot{}
}

type mockMonitorService struct {
	summaryFn      func(ctx context.Context) (*service.MonitorSummary, error)
	distributionFn func(ctx context.Context) ([]model.StatusCount, error)
	recentOrdersFn func(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error)
	orderStatusFn  func(ctx context.Context, orderID string) (*model.OrderStatusRecord, error)
}

func (m *mockMonitorService) Summary(ctx context.Context) (*service.MonitorSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx)
	}
	return &service.MonitorSummary{}, nil
}

func (m *mockMonitorService) Distribution(ctx context.Context) ([]model.StatusCount, error) {
	if m.distributionFn != nil {
		return m.distributionFn(ctx)
	}
	return nil, nil
}

func (m *mockMonitorService) RecentOrders(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error) {
	if m.recentOrdersFn != nil {
		return m.recentOrdersFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockMonitorService) OrderStatus(ctx context.Context, orderID string) (*model.OrderStatusRecord, error) {
	if m.orderStatusFn != nil {
		return m.orderStatusFn(ctx, orderID)
	}
	return nil, store.ErrNotFound
}

type mockReportRunner struct {
	reportFn func(ctx context.Context) (*validator.Report, error)
}

func (m *mockReportRunner) Report(ctx context.Context) (*validator.Report, error) {
	if m.reportFn != nil {
		return m.reportFn(ctx)
	}
	return &validator.Report{Healthy: true}, nil
}
