package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Step adapters are the external collaborators the pipeline orchestrator
// invokes, one per step, in a fixed order. Each call blocks until the adapter
// responds; a returned error terminates the run for this attempt. Adapters are
// not assumed idempotent, which is why a retry re-executes every step.

// DesignResult is the artifact produced by the design generation step.
type DesignResult struct {
	ImagePath string
}

// DesignGenerator produces a T-shirt design image from the customer's prompt.
type DesignGenerator interface {
	Generate(ctx context.Context, orderID kernel.UUID, prompt string) (DesignResult, error)
}

// PackageResult is the artifact produced by the packaging step.
type PackageResult struct {
	FilePath string
}

// Packager creates the order-detail file for production handoff.
type Packager interface {
	CreatePackage(ctx context.Context, orderID kernel.UUID, customer order.Customer) (PackageResult, error)
}

// UploadResult is the artifact produced by the upload step.
type UploadResult struct {
	RemoteLink string
}

// Uploader stores the order package remotely and returns a shareable link.
type Uploader interface {
	Upload(ctx context.Context, orderID kernel.UUID, filePath string) (UploadResult, error)
}

// NotifyResult is the receipt produced by the notification step.
type NotifyResult struct {
	NotificationID string
}

// Notifier sends the order-ready message to the customer in their language.
// Delivery is best-effort; a failure is reported like any other step failure.
type Notifier interface {
	Notify(ctx context.Context, orderID kernel.UUID, message, language string) (NotifyResult, error)
}
