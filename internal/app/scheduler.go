package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// reconcilePassTimeout bounds one scheduled pass end to end.
const reconcilePassTimeout = 2 * time.Minute

// reconcileTicker drives reconcile passes for deployments without a QStash
// subscription. The gocron job fires at the live interval and a pass only
// runs once its due time arrives. The pass reports its own next due time,
// so an idle week sleeps at the idle cadence while live games poll fast.
type reconcileTicker struct {
	reconciler *usecase.ReconciliationService
	logger     *logging.Logger

	mu     sync.Mutex
	nextAt time.Time
}

func (t *reconcileTicker) tick() {
	t.mu.Lock()
	due := !time.Now().Before(t.nextAt)
	t.mu.Unlock()
	if !due {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), reconcilePassTimeout)
	defer cancel()

	result, err := t.reconciler.RunPass(ctx)
	if err != nil {
		// Leaving nextAt in the past retries the pass on the next tick.
		t.logger.ErrorContext(ctx, "scheduled reconcile pass failed", "error", err)
		return
	}

	t.mu.Lock()
	t.nextAt = time.Now().Add(result.NextWakeDelay)
	t.mu.Unlock()
}

// newReconcileScheduler wires the ticker into a stopped gocron scheduler,
// App.Start starts it.
func newReconcileScheduler(reconciler *usecase.ReconciliationService, tickEvery time.Duration, logger *logging.Logger) (gocron.Scheduler, error) {
	if tickEvery <= 0 {
		tickEvery = time.Minute
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	ticker := &reconcileTicker{reconciler: reconciler, logger: logger}
	_, err = scheduler.NewJob(
		gocron.DurationJob(tickEvery),
		gocron.NewTask(ticker.tick),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("register reconcile job: %w", err)
	}

	return scheduler, nil
}
