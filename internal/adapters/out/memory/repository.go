// Package memory provides an in-memory implementation of the order
// repository and unit of work ports. It backs local development and tests
// where a PostgreSQL instance would be overkill; the stored state lives only
// as long as the process.
package memory

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// OrderRepository is a thread-safe in-memory order store. Aggregates are
// cloned on the way in and out, so callers can never mutate stored state
// without going through Update.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
}

// NewOrderRepository creates an empty in-memory repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[kernel.UUID]*order.Order),
	}
}

// Add stores a new order. A duplicate id yields an ObjectAlreadyExistsError
// and the stored order is retained unchanged.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	clone, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("order_id", aggregate.ID().String())
	}

	r.orders[aggregate.ID()] = clone
	return nil
}

// Update replaces the stored state of an existing order.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	clone, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("order_id", aggregate.ID().String())
	}

	r.orders[aggregate.ID()] = clone
	return nil
}

// Get retrieves a copy of the order with the given id.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order_id", id.String())
	}

	return cloneOrder(stored)
}

// GetAll retrieves copies of every stored order.
func (r *OrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*order.Order, 0, len(r.orders))
	for _, stored := range r.orders {
		clone, err := cloneOrder(stored)
		if err != nil {
			return nil, err
		}
		all = append(all, clone)
	}

	return all, nil
}

// Delete removes the order with the given id.
func (r *OrderRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return errs.NewObjectNotFoundError("order_id", id.String())
	}

	delete(r.orders, id)
	return nil
}

func cloneOrder(aggregate *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		aggregate.ID(),
		aggregate.Customer(),
		aggregate.Status(),
		aggregate.Phases(),
		aggregate.Result(),
		aggregate.CreatedAt(),
	)
}
