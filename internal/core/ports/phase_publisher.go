package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// PhasePublisher mirrors phase log entries to an external audit stream.
// Publishing is best-effort: a failure must never fail the pipeline run that
// produced the phase.
type PhasePublisher interface {
	Publish(ctx context.Context, orderID kernel.UUID, status order.Status, phase order.Phase) error
}
