package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"orderpulse.app/pulse/common/id"
	"orderpulse.app/pulse/internal/partition"
	"orderpulse.app/pulse/internal/queue"
	"orderpulse.app/pulse/internal/service"
)

var _ = Describe("IngestService", func() {
	var (
		svc        service.IngestService
		mockOrders *mockOrderStore
		mockQueue  *mockQueueProducer
		registry   *prometheus.Registry
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockOrders = &mockOrderStore{}
		mockQueue = &mockQueueProducer{}
		registry = prometheus.NewRegistry()

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())

		svc = service.NewIngestService(mockOrders, mockQueue, 4, registry, nil)
	})

	Describe("Ingest", func() {
		Context("with a valid event", func() {
			It("enqueues the event on its lane", func() {
				var captured queue.EventMessage
				mockQueue.enqueueFn = func(ctx context.Context, msg queue.EventMessage) error {
					captured = msg
					return nil
				}

				ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
				result, err := svc.Ingest(ctx, service.IngestParams{
					OrderID:   "ORD-1001",
					NewStatus: "SHIPPED",
					EventTS:   ts,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(result).NotTo(BeNil())
				Expect(result.EventID).NotTo(BeZero())

				wantLane, err := partition.Partition("ORD-1001", 4)
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Lane).To(Equal(wantLane))

				Expect(captured.EventID).To(Equal(result.EventID))
				Expect(captured.OrderID).To(Equal("ORD-1001"))
				Expect(captured.NewStatus).To(Equal("SHIPPED"))
				Expect(captured.EventTS).To(Equal(ts))
				Expect(captured.Lane).To(Equal(wantLane))
				Expect(captured.Attempt).To(Equal(1))
			})

			It("routes the same order to the same lane every time", func() {
				lanes := map[int]bool{}
				mockQueue.enqueueFn = func(ctx context.Context, msg queue.EventMessage) error {
					lanes[msg.Lane] = true
					return nil
				}

				for i := 0; i < 10; i++ {
					_, err := svc.Ingest(ctx, service.IngestParams{
						OrderID:   "ORD-2002",
						NewStatus: "CREATED",
						EventTS:   time.Now(),
					})
					Expect(err).NotTo(HaveOccurred())
				}
				Expect(lanes).To(HaveLen(1))
			})

			It("counts accepted events", func() {
				_, err := svc.Ingest(ctx, service.IngestParams{
					OrderID:   "ORD-3003",
					NewStatus: "DELIVERED",
					EventTS:   time.Now(),
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(svc.Metrics().Accepted).To(Equal(int64(1)))
			})

			It("exposes the counters through the registry", func() {
				for i := 0; i < 3; i++ {
					_, err := svc.Ingest(ctx, service.IngestParams{
						OrderID:   "ORD-3003",
						NewStatus: "DELIVERED",
						EventTS:   time.Now(),
					})
					Expect(err).NotTo(HaveOccurred())
				}
				_, err := svc.Ingest(ctx, service.IngestParams{
					OrderID:   "",
					NewStatus: "DELIVERED",
					EventTS:   time.Now(),
				})
				Expect(err).To(MatchError(service.ErrInvalidKey))

				families, err := registry.Gather()
				Expect(err).NotTo(HaveOccurred())

				values := map[string]float64{}
				for _, mf := range families {
					for _, m := range mf.GetMetric() {
						values[mf.GetName()] = m.GetCounter().GetValue()
					}
				}
				Expect(values).To(HaveKeyWithValue("pulse_ingest_events_accepted_total", 3.0))
				Expect(values).To(HaveKeyWithValue("pulse_ingest_events_rejected_invalid_key_total", 1.0))
			})
		})

		Context("with a missing order key", func() {
			It("rejects without enqueueing", func() {
				enqueued := false
				mockQueue.enqueueFn = func(ctx context.Context, msg queue.EventMessage) error {
					enqueued = true
					return nil
				}

				_, err := svc.Ingest(ctx, service.IngestParams{
					OrderID:   "",
					NewStatus: "SHIPPED",
					EventTS:   time.Now(),
				})
				Expect(err).To(MatchError(service.ErrInvalidKey))
				Expect(enqueued).To(BeFalse())
				Expect(svc.Metrics().RejectedInvalidKey).To(Equal(int64(1)))
			})

			It("rejects whitespace-only keys", func() {
				_, err := svc.Ingest(ctx, service.IngestParams{
					OrderID:   "   ",
					NewStatus: "SHIPPED",
					EventTS:   time.Now(),
				})
				Expect(err).To(MatchError(service.ErrInvalidKey))
			})
		})

		Context("with an incomplete event", func() {
			It("rejects a missing status", func() {
				_, err := svc.Ingest(ctx, service.IngestParams{
					OrderID: "ORD-4004",
					EventTS: time.Now(),
				})
				Expect(err).To(MatchError(service.ErrValidation))
				Expect(svc.Metrics().RejectedValidation).To(Equal(int64(1)))
			})

			It("rejects a missing timestamp", func() {
				_, err := svc.Ingest(ctx, service.IngestParams{
					OrderID:   "ORD-4004",
					NewStatus: "SHIPPED",
				})
				Expect(err).To(MatchError(service.ErrValidation))
			})
		})

		Context("when the queue is down", func() {
			It("surfaces the error and does not count the event accepted", func() {
				mockQueue.enqueueFn = func(ctx context.Context, msg queue.EventMessage) error {
					return errors.New("connection refused")
				}

				_, err := svc.Ingest(ctx, service.IngestParams{
					OrderID:   "ORD-5005",
					NewStatus: "SHIPPED",
					EventTS:   time.Now(),
				})
				Expect(err).To(HaveOccurred())
				Expect(svc.Metrics().Accepted).To(BeZero())
			})
		})
	})

	Describe("RegisterOrder", func() {
		It("upserts into the order master", func() {
			customer := "CUST-7"
			order, err := svc.RegisterOrder(ctx, "ORD-6006", &customer)
			Expect(err).NotTo(HaveOccurred())
			Expect(order.OrderID).To(Equal("ORD-6006"))
			Expect(order.CustomerID).To(Equal(&customer))
		})

		It("rejects an empty order id", func() {
			_, err := svc.RegisterOrder(ctx, "", nil)
			Expect(err).To(MatchError(service.ErrInvalidKey))
		})
	})
})
