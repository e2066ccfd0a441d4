package order

import "time"

// Phase names appended by the pipeline and by admin actions. The phase log is
// the audit trail callers poll to observe progress, so the names are part of
// the external contract.
const (
	PhaseOrderReceived       = "order_received"
	PhaseProcessingStarted   = "processing_started"
	PhaseDesignGenerated     = "design_generated"
	PhasePackageCreated      = "package_created"
	PhaseUploadedToStorage   = "uploaded_to_storage"
	PhaseProcessingCompleted = "processing_completed"
	PhaseProcessingFailed    = "processing_failed"
	PhaseRetryStarted        = "retry_started"
	PhaseStatusChanged       = "status_changed"
)

// Phase is one timestamped entry in an order's audit history. Entries are
// append-only: insertion order is chronological order, and entries are never
// reordered or deleted.
type Phase struct {
	Name      string    `json:"phase"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
}

// NewPhase creates a phase entry stamped with the current wall-clock time.
func NewPhase(name, details string) Phase {
	return Phase{
		Name:      name,
		Timestamp: time.Now(),
		Details:   details,
	}
}
