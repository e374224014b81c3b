package materializer_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"orderpulse.app/pulse/internal/materializer"
	"orderpulse.app/pulse/internal/service"
)

// blockingTxRunner parks every cycle until released, so specs can hold a
// cycle in flight at a known point.
type blockingTxRunner struct {
	started chan struct{}
	release chan struct{}
}

func (r *blockingTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	r.started <- struct{}{}
	<-r.release
	return fn(newFakeStores())
}

var _ = Describe("Scheduler", func() {
	var (
		runner    *blockingTxRunner
		scheduler *materializer.Scheduler
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		runner = &blockingTxRunner{
			started: make(chan struct{}),
			release: make(chan struct{}),
		}
		scheduler = materializer.NewScheduler(materializer.New(runner, nil), time.Hour, nil)
	})

	Describe("Stop", func() {
		It("blocks until the in-flight cycle completes", func() {
			go scheduler.Run(ctx)

			// The first cycle fires immediately; wait until it is inside
			// the transaction.
			Eventually(runner.started).Should(Receive())

			stopped := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				scheduler.Stop()
				close(stopped)
			}()

			Consistently(stopped, 200*time.Millisecond).ShouldNot(BeClosed())

			close(runner.release)
			Eventually(stopped).Should(BeClosed())
		})

		It("returns promptly when no cycle is running", func() {
			go scheduler.Run(ctx)
			Eventually(runner.started).Should(Receive())
			close(runner.release)

			stopped := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				scheduler.Stop()
				close(stopped)
			}()
			Eventually(stopped).Should(BeClosed())
		})
	})
})
