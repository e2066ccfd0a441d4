package ports

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// RunScheduler triggers a pipeline run for an order as an independent unit of
// work. Schedule returns immediately; the caller never blocks on the run and
// learns about its outcome only through the order's status and phase log.
type RunScheduler interface {
	Schedule(orderID kernel.UUID)
}
