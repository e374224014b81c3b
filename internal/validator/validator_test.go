package validator_test

import (
	"context"
	"errors"
	"sort"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"orderpulse.app/pulse/internal/model"
	"orderpulse.app/pulse/internal/store"
	"orderpulse.app/pulse/internal/validator"
)

type stubEventLog struct {
	events []model.Event
}

func (s *stubEventLog) Append(ctx context.Context, event *model.Event) (*model.Event, error) {
	return event, nil
}

func (s *stubEventLog) ListSince(ctx context.Context, position int64) ([]model.Event, error) {
	var out []model.Event
	for _, e := range s.events {
		if e.Position > position {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubEventLog) Stats(ctx context.Context) (*model.EventLogStats, error) {
	stats := &model.EventLogStats{TotalEvents: int64(len(s.events))}
	for _, e := range s.events {
		ts := e.EventTS
		if stats.LatestEventTS == nil || ts.After(*stats.LatestEventTS) {
			stats.LatestEventTS = &ts
		}
	}
	return stats, nil
}

type stubStatuses struct {
	records  map[string]model.OrderStatusRecord
	orphans  int64
	maxTSErr error
}

func (s *stubStatuses) GetByOrderID(ctx context.Context, orderID string) (*model.OrderStatusRecord, error) {
	if rec, ok := s.records[orderID]; ok {
		return &rec, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubStatuses) Apply(ctx context.Context, update model.StatusUpdate) (bool, error) {
	return false, nil
}

func (s *stubStatuses) ListRecent(ctx context.Context, limit int32) ([]model.OrderStatusRecord, error) {
	return nil, nil
}

func (s *stubStatuses) ListAll(ctx context.Context) ([]model.OrderStatusRecord, error) {
	var out []model.OrderStatusRecord
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (s *stubStatuses) Count(ctx context.Context) (int64, error) {
	return int64(len(s.records)), nil
}

func (s *stubStatuses) MaxLastUpdateTS(ctx context.Context) (*time.Time, error) {
	if s.maxTSErr != nil {
		return nil, s.maxTSErr
	}
	var max *time.Time
	for _, rec := range s.records {
		ts := rec.LastUpdateTS
		if max == nil || ts.After(*max) {
			max = &ts
		}
	}
	return max, nil
}

func (s *stubStatuses) Distribution(ctx context.Context) ([]model.StatusCount, error) {
	return nil, nil
}

func (s *stubStatuses) CountOrphans(ctx context.Context) (int64, error) {
	return s.orphans, nil
}

var _ = Describe("Validator", func() {
	var (
		events   *stubEventLog
		statuses *stubStatuses
		v        *validator.Validator
		ctx      context.Context
		base     time.Time
	)

	appendEvent := func(orderID, status string, ts time.Time) {
		events.events = append(events.events, model.Event{
			Position:  int64(len(events.events) + 1),
			OrderID:   orderID,
			NewStatus: status,
			EventTS:   ts,
		})
	}

	BeforeEach(func() {
		ctx = context.Background()
		events = &stubEventLog{}
		statuses = &stubStatuses{records: map[string]model.OrderStatusRecord{}}
		v = validator.New(events, statuses, nil)
		base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	})

	It("reports healthy when the table matches a full fold of the log", func() {
		appendEvent("ORD-1", "CREATED", base)
		appendEvent("ORD-1", "SHIPPED", base.Add(time.Hour))
		appendEvent("ORD-2", "CREATED", base.Add(30*time.Minute))

		statuses.records["ORD-1"] = model.OrderStatusRecord{
			OrderID:       "ORD-1",
			CurrentStatus: "SHIPPED",
			LastUpdateTS:  base.Add(time.Hour),
		}
		statuses.records["ORD-2"] = model.OrderStatusRecord{
			OrderID:       "ORD-2",
			CurrentStatus: "CREATED",
			LastUpdateTS:  base.Add(30 * time.Minute),
		}

		report, err := v.Report(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Healthy).To(BeTrue())
		Expect(report.Mismatches).To(BeEmpty())
		Expect(report.ExpectedOrders).To(Equal(2))
		Expect(report.TrackedOrders).To(Equal(2))
	})

	It("flags an order with events but no materialized row", func() {
		appendEvent("ORD-1", "CREATED", base)

		report, err := v.Report(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Healthy).To(BeFalse())
		Expect(report.Mismatches).To(HaveLen(1))
		Expect(report.Mismatches[0].OrderID).To(Equal("ORD-1"))
		Expect(report.Mismatches[0].ExpectedStatus).To(Equal("CREATED"))
		Expect(report.MaxLastUpdateTS).To(BeNil())
	})

	It("surfaces a freshness read failure", func() {
		statuses.maxTSErr = errors.New("connection reset")

		_, err := v.Report(ctx)
		Expect(err).To(MatchError(statuses.maxTSErr))
	})

	It("flags a stale row the materializer has not caught up on", func() {
		appendEvent("ORD-1", "CREATED", base)
		appendEvent("ORD-1", "SHIPPED", base.Add(time.Hour))

		statuses.records["ORD-1"] = model.OrderStatusRecord{
			OrderID:       "ORD-1",
			CurrentStatus: "CREATED",
			LastUpdateTS:  base,
		}

		report, err := v.Report(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Healthy).To(BeFalse())
		Expect(report.Mismatches).To(HaveLen(1))
		Expect(report.Mismatches[0].Reason).To(ContainSubstring("stale"))
	})

	It("does not flag a row whose status matches despite a newer same-status event", func() {
		// A repeated CREATED with a later timestamp is skipped by the
		// conditional apply, so last_update_ts stays behind the log. The
		// visible status still matches the fold.
		appendEvent("ORD-1", "CREATED", base)
		appendEvent("ORD-1", "CREATED", base.Add(time.Hour))

		statuses.records["ORD-1"] = model.OrderStatusRecord{
			OrderID:       "ORD-1",
			CurrentStatus: "CREATED",
			LastUpdateTS:  base,
		}

		report, err := v.Report(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Healthy).To(BeTrue())
	})

	It("flags a row that has no source events", func() {
		statuses.records["ORD-9"] = model.OrderStatusRecord{
			OrderID:       "ORD-9",
			CurrentStatus: "SHIPPED",
			LastUpdateTS:  base,
		}

		report, err := v.Report(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Healthy).To(BeFalse())
		Expect(report.Mismatches).To(HaveLen(1))
		Expect(report.Mismatches[0].Reason).To(ContainSubstring("no source events"))
	})

	It("carries the orphan count through", func() {
		statuses.orphans = 3

		report, err := v.Report(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.OrphanedOrders).To(Equal(int64(3)))
	})
})
