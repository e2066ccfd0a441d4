package memory

import (
	"context"

	"fulfillment/internal/core/ports"
)

// UnitOfWorkFactory creates unit of work instances over a shared in-memory
// repository. There is no real transaction support; each repository call is
// applied immediately and commit and rollback are no-ops.
type UnitOfWorkFactory struct {
	repository *OrderRepository
}

// NewUnitOfWorkFactory creates a factory over the given repository.
func NewUnitOfWorkFactory(repository *OrderRepository) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{repository: repository}
}

// Create produces a new UnitOfWork sharing the factory's repository.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{repository: f.repository}
}

// UnitOfWork is the in-memory stand-in for a database transaction.
type UnitOfWork struct {
	repository *OrderRepository
}

// Begin is a no-op.
func (u *UnitOfWork) Begin(_ context.Context) error { return nil }

// Commit is a no-op; changes are already applied.
func (u *UnitOfWork) Commit(_ context.Context) error { return nil }

// Rollback is a no-op; in-memory changes cannot be reverted.
func (u *UnitOfWork) Rollback(_ context.Context) error { return nil }

// OrderRepository returns the shared in-memory repository.
func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return u.repository
}
