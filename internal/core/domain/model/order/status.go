package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with two separate sets of transition rules:
//
// Pipeline-driven transitions (managed by the orchestrator):
//
//	Received ──> Processing ──> DesignGenerated ──> Packaged ──> Uploaded ──> Completed
//	                 │                 │                │            │
//	                 └────────────┬────┴────────────────┴────────────┘
//	                              v
//	                           Failed ──> Retrying ──> Processing
//
// Completed and Failed are terminal for the pipeline; only Retrying may
// re-enter from Failed.
//
// Admin-driven transitions use a separate table (see CanAdminChangeTo) and
// never go through the pipeline.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status when an order is first created.
	Received

	// Processing indicates a pipeline run is working on the order.
	Processing

	// DesignGenerated indicates the design step has produced an image.
	DesignGenerated

	// Packaged indicates the order-detail file has been created.
	Packaged

	// Uploaded indicates the package has been stored remotely.
	Uploaded

	// Completed indicates the order finished successfully. Terminal.
	Completed

	// Failed indicates a pipeline step errored. Terminal for the pipeline;
	// a retry request may move the order to Retrying.
	Failed

	// Retrying indicates a failed order is about to re-enter the pipeline.
	Retrying
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		Received:        "Received",
		Processing:      "Processing",
		DesignGenerated: "DesignGenerated",
		Packaged:        "Packaged",
		Uploaded:        "Uploaded",
		Completed:       "Completed",
		Failed:          "Failed",
		Retrying:        "Retrying",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:        "Received",
		Processing:      "Processing",
		DesignGenerated: "DesignGenerated",
		Packaged:        "Packaged",
		Uploaded:        "Uploaded",
		Completed:       "Completed",
		Failed:          "Failed",
		Retrying:        "Retrying",
	}
}

// StatusFromString parses a status name as supplied by API callers.
// Unknown names are rejected.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid. Unknown (0) and any other
// values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the pipeline considers the status final.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed
}

// adminTransitions is the table of allowed admin-initiated status changes,
// keyed by current status. A pair absent from the table is rejected.
// Pipeline-driven transitions do not consult this table.
func adminTransitions() map[Status][]Status {
	return map[Status][]Status{
		Received:   {Processing, Failed},
		Processing: {Completed, Failed},
		Completed:  {},
		Failed:     {},
	}
}

// CanAdminChangeTo checks the admin transition table for the current -> target
// pair. Returns an InvalidTransitionError when the pair is not allowed;
// the caller must leave the order unchanged in that case.
func (s Status) CanAdminChangeTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	for _, allowed := range adminTransitions()[s] {
		if allowed == target {
			return nil
		}
	}

	return errs.NewInvalidTransitionError(s.String(), target.String())
}

// startProcessing transitions to Processing at the start of a pipeline run.
// Valid from Received (first run) and Retrying (pipeline re-entry).
func (s Status) startProcessing() (Status, error) {
	if s != Received && s != Retrying {
		return 0, errs.NewInvalidTransitionError(s.String(), Processing.String())
	}
	return Processing, nil
}

// advance transitions to the next intermediate pipeline state. The pipeline
// is strictly sequential, so each intermediate state is reachable only from
// its predecessor.
func (s Status) advance(target Status) (Status, error) {
	valid := map[Status]Status{
		DesignGenerated: Processing,
		Packaged:        DesignGenerated,
		Uploaded:        Packaged,
		Completed:       Uploaded,
	}

	from, ok := valid[target]
	if !ok || s != from {
		return 0, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}

// fail transitions to Failed. Any non-terminal state may fail.
func (s Status) fail() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError(s.String(), Failed.String())
	}
	return Failed, nil
}

// startRetry transitions to Retrying. Only a Failed order may be retried.
func (s Status) startRetry() (Status, error) {
	if s != Failed {
		return 0, errs.NewInvalidTransitionError(s.String(), Retrying.String())
	}
	return Retrying, nil
}
