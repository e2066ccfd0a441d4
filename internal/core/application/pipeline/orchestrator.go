package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Step names recorded in the processing_failed phase when a step fails.
const (
	StepDesign  = "design_generation"
	StepPackage = "package_creation"
	StepUpload  = "storage_upload"
	StepNotify  = "customer_notification"
)

// RunOutcome describes how a pipeline run ended. A run that records a step
// failure on the order is still a completed run; only infrastructure problems
// (lock contention, missing order, persistence errors) surface as errors from
// Run itself.
type RunOutcome struct {
	Success     bool
	FinalStatus order.Status
	FailingStep string
	Err         error
}

// Orchestrator executes the fulfillment pipeline for a single order.
// Each run takes the order's RunLock, moves the order to processing, then
// performs the four steps in sequence. Every transition is persisted in its
// own short transaction before the next step starts, and mirrored to the
// phase audit stream on a best-effort basis.
type Orchestrator struct {
	uowFactory ports.UnitOfWorkFactory
	designs    ports.DesignGenerator
	packager   ports.Packager
	uploader   ports.Uploader
	notifier   ports.Notifier
	phases     ports.PhasePublisher
	lock       *RunLock
	logger     *slog.Logger
}

// NewOrchestrator wires the orchestrator with its step adapters. The phase
// publisher may be nil, in which case phases are only kept on the order.
func NewOrchestrator(
	uowFactory ports.UnitOfWorkFactory,
	designs ports.DesignGenerator,
	packager ports.Packager,
	uploader ports.Uploader,
	notifier ports.Notifier,
	phases ports.PhasePublisher,
	lock *RunLock,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		uowFactory: uowFactory,
		designs:    designs,
		packager:   packager,
		uploader:   uploader,
		notifier:   notifier,
		phases:     phases,
		lock:       lock,
		logger:     logger.With("component", "pipeline_orchestrator"),
	}
}

type pipelineStep struct {
	name string
	// execute calls the external adapter and returns the aggregate mutation
	// to apply once the adapter succeeded.
	execute func(ctx context.Context) (func() error, error)
}

// Run executes the full pipeline for the given order. Returns an
// AlreadyRunningError when another run holds the order's lock, and an
// ObjectNotFoundError when the order does not exist. A step failure is
// recorded on the order and reported through the returned RunOutcome, not as
// an error.
func (o *Orchestrator) Run(ctx context.Context, orderID kernel.UUID) (RunOutcome, error) {
	if err := orderID.Validate(); err != nil {
		return RunOutcome{}, err
	}

	if !o.lock.TryAcquire(orderID) {
		return RunOutcome{}, errs.NewAlreadyRunningError(orderID.String())
	}
	defer o.lock.Release(orderID)

	aggregate, err := o.loadOrder(ctx, orderID)
	if err != nil {
		return RunOutcome{}, err
	}

	if err = o.transition(ctx, aggregate, aggregate.StartProcessing); err != nil {
		return RunOutcome{}, err
	}

	for _, step := range o.steps(aggregate) {
		mutate, stepErr := o.executeStep(ctx, step)
		if stepErr != nil {
			o.logger.WarnContext(ctx, "Pipeline step failed",
				"order_id", orderID.String(), "step", step.name, "error", stepErr)

			failedStep := step.name
			if err = o.transition(ctx, aggregate, func() error {
				return aggregate.Fail(failedStep, stepErr.Error())
			}); err != nil {
				return RunOutcome{}, err
			}

			return RunOutcome{
				Success:     false,
				FinalStatus: aggregate.Status(),
				FailingStep: step.name,
				Err:         stepErr,
			}, nil
		}

		if err = o.transition(ctx, aggregate, mutate); err != nil {
			return RunOutcome{}, err
		}
	}

	o.logger.InfoContext(ctx, "Pipeline run completed", "order_id", orderID.String())

	return RunOutcome{
		Success:     true,
		FinalStatus: aggregate.Status(),
	}, nil
}

func (o *Orchestrator) steps(aggregate *order.Order) []pipelineStep {
	return []pipelineStep{
		{
			name: StepDesign,
			execute: func(ctx context.Context) (func() error, error) {
				result, err := o.designs.Generate(ctx, aggregate.ID(), aggregate.Customer().DesignPrompt())
				if err != nil {
					return nil, err
				}
				return func() error { return aggregate.SetDesign(result.ImagePath) }, nil
			},
		},
		{
			name: StepPackage,
			execute: func(ctx context.Context) (func() error, error) {
				result, err := o.packager.CreatePackage(ctx, aggregate.ID(), aggregate.Customer())
				if err != nil {
					return nil, err
				}
				return func() error { return aggregate.SetPackage(result.FilePath) }, nil
			},
		},
		{
			name: StepUpload,
			execute: func(ctx context.Context) (func() error, error) {
				result, err := o.uploader.Upload(ctx, aggregate.ID(), aggregate.Result().PackagePath)
				if err != nil {
					return nil, err
				}
				return func() error { return aggregate.SetUpload(result.RemoteLink) }, nil
			},
		},
		{
			name: StepNotify,
			execute: func(ctx context.Context) (func() error, error) {
				message := fmt.Sprintf(
					"Hi %s, your T-shirt order %s is ready! Download your package: %s",
					aggregate.Customer().Name(), aggregate.ID(), aggregate.Result().StorageLink)

				result, err := o.notifier.Notify(ctx, aggregate.ID(), message, aggregate.Customer().Language())
				if err != nil {
					return nil, err
				}
				return func() error { return aggregate.Complete(result.NotificationID) }, nil
			},
		},
	}
}

// executeStep runs one step adapter, converting panics into step failures so
// a misbehaving adapter cannot take the whole process down.
func (o *Orchestrator) executeStep(ctx context.Context, step pipelineStep) (mutate func() error, err error) {
	defer func() {
		if r := recover(); r != nil {
			mutate = nil
			err = fmt.Errorf("step panicked: %v", r)
		}
	}()

	return step.execute(ctx)
}

// transition applies a single aggregate mutation, persists the order in its
// own transaction, and mirrors the appended phase to the audit stream.
func (o *Orchestrator) transition(ctx context.Context, aggregate *order.Order, mutate func() error) error {
	if err := mutate(); err != nil {
		return err
	}

	uow := o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	o.publishLastPhase(ctx, aggregate)
	return nil
}

func (o *Orchestrator) loadOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	uow := o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (o *Orchestrator) publishLastPhase(ctx context.Context, aggregate *order.Order) {
	if o.phases == nil {
		return
	}

	phases := aggregate.Phases()
	last := phases[len(phases)-1]

	if err := o.phases.Publish(ctx, aggregate.ID(), aggregate.Status(), last); err != nil {
		o.logger.WarnContext(ctx, "Phase publish failed",
			"order_id", aggregate.ID().String(), "phase", last.Name, "error", err)
	}
}
