package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for one customer's T-shirt request. It manages
// the order lifecycle from intake through design, packaging, upload, and
// customer notification.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, assigned at creation, immutable
//   - Customer data is validated before the order exists
//   - Status transitions follow the pipeline or admin transition rules
//   - The phase log is append-only and chronological
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id        kernel.UUID
	customer  Customer
	status    Status
	phases    []Phase
	result    Result
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Received status with the order_received
// phase appended. The customer must already be validated via NewCustomer;
// invalid customer data never reaches persistence.
func NewOrder(id kernel.UUID, customer Customer) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		id:            id,
		customer:      customer,
		status:        Received,
		createdAt:     time.Now(),
		isConstructed: true,
	}
	o.appendPhase(PhaseOrderReceived, "Order received and queued for processing")

	return o, nil
}

// RestoreOrder rebuilds an Order from persisted state without re-running
// creation side effects. Used by repositories when mapping from storage.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	status Status,
	phases []Phase,
	result Result,
	createdAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	restored := make([]Phase, len(phases))
	copy(restored, phases)

	return &Order{
		id:            id,
		customer:      customer,
		status:        status,
		phases:        restored,
		result:        result,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the customer attributes captured at creation.
func (o *Order) Customer() Customer {
	return o.customer
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Phases returns a copy of the phase log in chronological order.
func (o *Order) Phases() []Phase {
	phases := make([]Phase, len(o.phases))
	copy(phases, o.phases)
	return phases
}

// Result returns the artifacts produced by the latest pipeline run.
func (o *Order) Result() Result {
	return o.result
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StartProcessing moves the order into Processing at the start of a pipeline
// run and appends the processing_started phase. Valid from Received and
// Retrying only.
func (o *Order) StartProcessing() error {
	newStatus, err := o.status.startProcessing()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendPhase(PhaseProcessingStarted, "Order processing started")
	return nil
}

// SetDesign records the generated design image and advances to
// DesignGenerated.
func (o *Order) SetDesign(imagePath string) error {
	newStatus, err := o.status.advance(DesignGenerated)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.result.DesignPath = imagePath
	o.appendPhase(PhaseDesignGenerated, fmt.Sprintf("Design generated at %s", imagePath))
	return nil
}

// SetPackage records the order-detail file and advances to Packaged.
func (o *Order) SetPackage(filePath string) error {
	newStatus, err := o.status.advance(Packaged)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.result.PackagePath = filePath
	o.appendPhase(PhasePackageCreated, fmt.Sprintf("Order package created at %s", filePath))
	return nil
}

// SetUpload records the remote storage link and advances to Uploaded.
func (o *Order) SetUpload(remoteLink string) error {
	newStatus, err := o.status.advance(Uploaded)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.result.StorageLink = remoteLink
	o.appendPhase(PhaseUploadedToStorage, fmt.Sprintf("Package uploaded, available at %s", remoteLink))
	return nil
}

// Complete records the customer notification and finishes the run. The
// notification step is the last pipeline step, so its success and the run's
// completion are one transition: status becomes Completed and the
// processing_completed phase is appended.
func (o *Order) Complete(notificationID string) error {
	newStatus, err := o.status.advance(Completed)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.result.NotificationID = notificationID
	o.result.NotificationSent = true
	o.appendPhase(PhaseProcessingCompleted, "Order processing completed successfully")
	return nil
}

// Fail marks the run as failed, recording the failing step and the adapter's
// error message in the processing_failed phase. Later steps are never
// attempted; partial fulfillment stays visible in the result record.
func (o *Order) Fail(step, message string) error {
	newStatus, err := o.status.fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendPhase(PhaseProcessingFailed, fmt.Sprintf("Step %s failed: %s", step, message))
	return nil
}

// StartRetry moves a Failed order to Retrying and appends the retry_started
// phase. The subsequent pipeline run re-executes all steps from the beginning.
func (o *Order) StartRetry() error {
	newStatus, err := o.status.startRetry()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendPhase(PhaseRetryStarted, "Retrying order processing")
	return nil
}

// ChangeStatus performs an admin-initiated status change, consulting only the
// admin transition table. On rejection the order is left unchanged.
func (o *Order) ChangeStatus(target Status) error {
	if err := o.status.CanAdminChangeTo(target); err != nil {
		return err
	}

	previous := o.status
	o.status = target
	o.appendPhase(PhaseStatusChanged,
		fmt.Sprintf("Status changed from %s to %s by admin", previous, target))
	return nil
}

func (o *Order) appendPhase(name, details string) {
	o.phases = append(o.phases, NewPhase(name, details))
}
