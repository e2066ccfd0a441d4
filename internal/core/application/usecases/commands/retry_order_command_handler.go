package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// RetryOrderCommandHandler handles retry requests for failed orders.
// Moves the order to "retrying" and schedules a fresh pipeline run that
// re-executes every step from the beginning.
type RetryOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  ports.RunScheduler
}

// NewRetryOrderCommandHandler creates a handler for retry operations.
func NewRetryOrderCommandHandler(uowFactory OrderUoWFactory, scheduler ports.RunScheduler) RetryOrderCommandHandler {
	return RetryOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
	}
}

// Handle processes the retry command.
// Only failed orders can be retried: any other status yields an
// InvalidTransitionError and the order is left unchanged. Returns an
// ObjectNotFoundError when the order does not exist. The pipeline run is
// scheduled only after the retrying status is committed.
func (h *RetryOrderCommandHandler) Handle(ctx context.Context, cmd RetryOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.StartRetry(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.scheduler.Schedule(cmd.OrderID())
	return nil
}
