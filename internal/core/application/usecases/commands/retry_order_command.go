package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRetryOrderCommandIsNotConstructed = errors.New(
	"RetryOrderCommand must be created via NewRetryOrderCommand constructor",
)

// RetryOrderCommand represents a request to re-run the fulfillment pipeline
// for a failed order.
type RetryOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRetryOrderCommand creates a command to retry a failed order.
func NewRetryOrderCommand(orderID kernel.UUID) (RetryOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RetryOrderCommand{}, err
	}

	return RetryOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryOrderCommand) Validate() error {
	return c.guard.Validate(ErrRetryOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to retry.
func (c RetryOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
