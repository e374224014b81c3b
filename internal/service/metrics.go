package service

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// ingestMetrics counts ingress outcomes. Rejected events never reach the
// log, so the only place they can be observed is here; the counters are
// exported for scraping and mirrored into the monitor summary.
type ingestMetrics struct {
	accepted           prometheus.Counter
	rejectedInvalidKey prometheus.Counter
	rejectedValidation prometheus.Counter
}

func newIngestMetrics(reg prometheus.Registerer) *ingestMetrics {
	m := &ingestMetrics{
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulse_ingest_events_accepted_total",
			Help: "Total number of events accepted and enqueued on a lane",
		}),
		rejectedInvalidKey: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulse_ingest_events_rejected_invalid_key_total",
			Help: "Total number of events dropped for a missing or malformed order key",
		}),
		rejectedValidation: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pulse_ingest_events_rejected_validation_total",
			Help: "Total number of events rejected before entering the log",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.accepted, m.rejectedInvalidKey, m.rejectedValidation)
	}
	return m
}

type IngestMetricsSnapshot struct {
	Accepted           int64 `json:"accepted"`
	RejectedInvalidKey int64 `json:"rejected_invalid_key"`
	RejectedValidation int64 `json:"rejected_validation"`
}

func (m *ingestMetrics) snapshot() IngestMetricsSnapshot {
	return IngestMetricsSnapshot{
		Accepted:           counterValue(m.accepted),
		RejectedInvalidKey: counterValue(m.rejectedInvalidKey),
		RejectedValidation: counterValue(m.rejectedValidation),
	}
}

func counterValue(c prometheus.Counter) int64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return int64(m.GetCounter().GetValue())
}
