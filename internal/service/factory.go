package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"orderpulse.app/pulse/internal/queue"
	"orderpulse.app/pulse/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	ingest   IngestService
}

// NewServices wires the service layer. The ingest service is built once so
// its counters accumulate for the lifetime of the process.
func NewServices(stores *store.Stores, txRunner TxRunner, producer queue.Producer, lanes int) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		ingest:   NewIngestService(stores.Orders(), producer, lanes, prometheus.DefaultRegisterer, nil),
	}
}

func (s *Services) Ingest() IngestService {
	return s.ingest
}

func (s *Services) Monitor() MonitorService {
	return NewMonitorService(s.stores.Events(), s.stores.Statuses(), s.stores.Orders(), s.ingest)
}
