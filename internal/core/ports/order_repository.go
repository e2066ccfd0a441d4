package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It is the single source of truth for orders; the pipeline depends only on
// this interface, never on a concrete storage technology.
type OrderRepository interface {
	// Add persists a new order aggregate. Returns an ObjectAlreadyExistsError
	// when an order with the same id is already stored; the stored order is
	// retained unchanged.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns an ObjectNotFoundError when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every stored order. Used by the report query and the
	// stalled-order recovery job.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// Delete removes an order outright. Administrative operation, outside
	// pipeline scope. Returns an ObjectNotFoundError when the order does
	// not exist.
	Delete(ctx context.Context, id kernel.UUID) error
}
