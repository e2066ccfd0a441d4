package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new T-shirt order.
// All customer attributes are validated in the constructor, so invalid data
// never reaches the handler or persistence.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID,
//	    "Linh Tran", "linh@example.com", "M", "black", 2, "a cat surfing a wave", "vi")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	customer order.Customer

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order. Customer
// attribute validation (name, email, quantity, language defaulting) is
// delegated to order.NewCustomer.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	name, email, size, color string,
	quantity int,
	designPrompt, language string,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	customer, err := order.NewCustomer(name, email, size, color, quantity, designPrompt, language)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:  orderID,
		customer: customer,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the validated customer attributes.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}
