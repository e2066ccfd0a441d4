package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Dispatcher runs the pipeline for scheduled orders in background goroutines.
// It implements ports.RunScheduler: Schedule returns immediately and the run's
// outcome is observable only through the order's status and phase log.
type Dispatcher struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
	wg           sync.WaitGroup
}

// NewDispatcher creates a dispatcher around the given orchestrator.
func NewDispatcher(orchestrator *Orchestrator, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		orchestrator: orchestrator,
		logger:       logger.With("component", "pipeline_dispatcher"),
	}
}

// Schedule starts a pipeline run for the order in a new goroutine. A
// concurrent run for the same order is detected by the orchestrator's lock
// and logged, not treated as a failure.
func (d *Dispatcher) Schedule(orderID kernel.UUID) {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		ctx := context.Background()
		outcome, err := d.orchestrator.Run(ctx, orderID)
		if err != nil {
			if errors.Is(err, errs.ErrAlreadyRunning) {
				d.logger.InfoContext(ctx, "Run skipped, order is already being processed",
					"order_id", orderID.String())
				return
			}

			d.logger.ErrorContext(ctx, "Pipeline run aborted",
				"order_id", orderID.String(), "error", err)
			return
		}

		if !outcome.Success {
			d.logger.WarnContext(ctx, "Order processing failed",
				"order_id", orderID.String(),
				"step", outcome.FailingStep,
				"status", outcome.FinalStatus.String())
			return
		}

		d.logger.InfoContext(ctx, "Order processed",
			"order_id", orderID.String(), "status", outcome.FinalStatus.String())
	}()
}

// Wait blocks until all scheduled runs have finished. Used during shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
