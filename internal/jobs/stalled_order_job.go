package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/pipeline"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// StalledOrderJob re-dispatches orders whose pipeline run never finished.
// An order in Received or Retrying with no run in flight and no recent
// activity was lost to a crash or restart; scheduling it again resumes
// processing from the start.
type StalledOrderJob struct {
	uowFactory ports.UnitOfWorkFactory
	scheduler  ports.RunScheduler
	lock       *pipeline.RunLock
	threshold  time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStalledOrderJob creates the recovery job. Orders younger than threshold
// are left alone so freshly accepted work is not double-scheduled.
func NewStalledOrderJob(
	uowFactory ports.UnitOfWorkFactory,
	scheduler ports.RunScheduler,
	lock *pipeline.RunLock,
	threshold time.Duration,
	logger *slog.Logger,
) *StalledOrderJob {
	return &StalledOrderJob{
		uowFactory: uowFactory,
		scheduler:  scheduler,
		lock:       lock,
		threshold:  threshold,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "stalled_order_job"),
	}
}

// Start begins the stalled-order job to run every minute.
func (j *StalledOrderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.runOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stalled order job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled order job started (running every minute)")
	return nil
}

// Stop stops the stalled-order job.
func (j *StalledOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stalled order job stopped")
}

func (j *StalledOrderJob) runOnce(ctx context.Context) error {
	orders, err := j.loadOrders(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-j.threshold)
	for _, aggregate := range orders {
		if !j.isStalled(aggregate, cutoff) {
			continue
		}

		j.logger.InfoContext(ctx, "Re-dispatching stalled order",
			"order_id", aggregate.ID(), "status", aggregate.Status().String())
		j.scheduler.Schedule(aggregate.ID())
	}

	return nil
}

func (j *StalledOrderJob) loadOrders(ctx context.Context) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	orders, err := uow.OrderRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

func (j *StalledOrderJob) isStalled(aggregate *order.Order, cutoff time.Time) bool {
	status := aggregate.Status()
	if status != order.Received && status != order.Retrying {
		return false
	}

	// A held lock means the run is still in flight.
	if j.lock.IsHeld(aggregate.ID()) {
		return false
	}

	return lastActivity(aggregate).Before(cutoff)
}

func lastActivity(aggregate *order.Order) time.Time {
	phases := aggregate.Phases()
	if len(phases) == 0 {
		return aggregate.CreatedAt()
	}
	return phases[len(phases)-1].Timestamp
}
