package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"orderpulse.app/pulse/internal/http/handler"
	"orderpulse.app/pulse/internal/model"
	"orderpulse.app/pulse/internal/service"
	"orderpulse.app/pulse/internal/validator"
)

var _ = Describe("MonitorHandler", func() {
	var (
		router  *gin.Engine
		monitor *mockMonitorService
		reports *mockReportRunner
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		monitor = &mockMonitorService{}
		reports = &mockReportRunner{}
		h := handler.NewMonitorHandler(monitor, reports)
		router.GET("/summary", h.Summary)
		router.GET("/distribution", h.Distribution)
		router.GET("/orders", h.RecentOrders)
		router.GET("/validation", h.Validate)
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("serves the summary", func() {
		monitor.summaryFn = func(_ context.Context) (*service.MonitorSummary, error) {
			return &service.MonitorSummary{TotalEvents: 12, DistinctOrders: 3}, nil
		}

		w := get("/summary")
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["total_events"]).To(BeEquivalentTo(12))
	})

	It("serves the status distribution", func() {
		monitor.distributionFn = func(_ context.Context) ([]model.StatusCount, error) {
			return []model.StatusCount{{Status: "SHIPPED", Count: 4}}, nil
		}

		w := get("/distribution")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("SHIPPED"))
	})

	It("rejects a non-numeric limit", func() {
		w := get("/orders?limit=abc")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("serves a validation report", func() {
		reports.reportFn = func(_ context.Context) (*validator.Report, error) {
			return &validator.Report{
				Healthy: false,
				Mismatches: []validator.Mismatch{
					{OrderID: "ORD-1", ExpectedStatus: "SHIPPED", ActualStatus: "CREATED", Reason: "materialized row is stale"},
				},
			}, nil
		}

		w := get("/validation")
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp validator.Report
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Healthy).To(BeFalse())
		Expect(resp.Mismatches).To(HaveLen(1))
	})
})
