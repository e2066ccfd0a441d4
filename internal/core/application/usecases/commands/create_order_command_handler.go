package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// Persists the order in "received" status and schedules the fulfillment
// pipeline run; the caller never waits for processing.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	scheduler  ports.RunScheduler
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
// Requires an OrderUoWFactory for transactional persistence and a RunScheduler
// to trigger the pipeline after the order is stored.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, scheduler ports.RunScheduler) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
	}
}

// Handle processes the order creation command.
// Persists the new order first and schedules the pipeline run only after the
// transaction committed, so a scheduled run always finds its order.
// Returns an ObjectAlreadyExistsError for a duplicate order id; the stored
// order is left untouched and no run is scheduled.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.Customer())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.scheduler.Schedule(cmd.OrderID())
	return nil
}
