package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), validCustomer(t))
	require.NoError(t, err)
	return o
}

func phaseNames(o *order.Order) []string {
	phases := o.Phases()
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.Name
	}
	return names
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.Validate())
	assert.Equal(t, order.Received, o.Status())
	assert.Equal(t, []string{order.PhaseOrderReceived}, phaseNames(o))
	assert.WithinDuration(t, time.Now(), o.CreatedAt(), time.Second)
	assert.Equal(t, order.Result{}, o.Result())
}

func TestNewOrder_InvalidID(t *testing.T) {
	var zero kernel.UUID
	_, err := order.NewOrder(zero, validCustomer(t))
	require.Error(t, err)
}

func TestNewOrder_UnconstructedCustomer(t *testing.T) {
	var customer order.Customer
	_, err := order.NewOrder(kernel.NewUUID(), customer)
	require.Error(t, err)
}

func TestOrder_Validate_ZeroValue(t *testing.T) {
	var o order.Order
	require.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())

	var nilOrder *order.Order
	require.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
}

func TestOrder_FullPipelineRun(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.StartProcessing())
	assert.Equal(t, order.Processing, o.Status())

	require.NoError(t, o.SetDesign("/designs/1/design.png"))
	assert.Equal(t, order.DesignGenerated, o.Status())

	require.NoError(t, o.SetPackage("/packages/1/order.csv"))
	assert.Equal(t, order.Packaged, o.Status())

	require.NoError(t, o.SetUpload("https://storage.example.com/1"))
	assert.Equal(t, order.Uploaded, o.Status())

	require.NoError(t, o.Complete("notif_1"))
	assert.Equal(t, order.Completed, o.Status())

	assert.Equal(t, []string{
		order.PhaseOrderReceived,
		order.PhaseProcessingStarted,
		order.PhaseDesignGenerated,
		order.PhasePackageCreated,
		order.PhaseUploadedToStorage,
		order.PhaseProcessingCompleted,
	}, phaseNames(o))

	result := o.Result()
	assert.Equal(t, "/designs/1/design.png", result.DesignPath)
	assert.Equal(t, "/packages/1/order.csv", result.PackagePath)
	assert.Equal(t, "https://storage.example.com/1", result.StorageLink)
	assert.Equal(t, "notif_1", result.NotificationID)
	assert.True(t, result.NotificationSent)
}

func TestOrder_StepsAreStrictlySequential(t *testing.T) {
	o := newTestOrder(t)

	// Cannot skip ahead from Received.
	require.ErrorIs(t, o.SetDesign("x"), errs.ErrInvalidTransition)
	require.ErrorIs(t, o.SetPackage("x"), errs.ErrInvalidTransition)
	require.ErrorIs(t, o.SetUpload("x"), errs.ErrInvalidTransition)
	require.ErrorIs(t, o.Complete("x"), errs.ErrInvalidTransition)

	require.NoError(t, o.StartProcessing())

	// Cannot skip the design step.
	require.ErrorIs(t, o.SetPackage("x"), errs.ErrInvalidTransition)
	require.ErrorIs(t, o.StartProcessing(), errs.ErrInvalidTransition)
}

func TestOrder_Fail(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.StartProcessing())
	require.NoError(t, o.SetDesign("/designs/1/design.png"))

	require.NoError(t, o.Fail("create_package", "disk full"))

	assert.Equal(t, order.Failed, o.Status())
	phases := o.Phases()
	last := phases[len(phases)-1]
	assert.Equal(t, order.PhaseProcessingFailed, last.Name)
	assert.Contains(t, last.Details, "create_package")
	assert.Contains(t, last.Details, "disk full")

	// Partial fulfillment stays visible.
	assert.Equal(t, "/designs/1/design.png", o.Result().DesignPath)
	assert.Empty(t, o.Result().StorageLink)
}

func TestOrder_Fail_TerminalStates(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.StartProcessing())
	require.NoError(t, o.Fail("generate_design", "timeout"))

	require.ErrorIs(t, o.Fail("generate_design", "again"), errs.ErrInvalidTransition)
}

func TestOrder_StartRetry(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.StartProcessing())
	require.NoError(t, o.Fail("upload", "connection refused"))

	require.NoError(t, o.StartRetry())
	assert.Equal(t, order.Retrying, o.Status())

	// Re-entry: a new run restarts from the beginning.
	require.NoError(t, o.StartProcessing())
	assert.Equal(t, order.Processing, o.Status())
}

func TestOrder_StartRetry_OnlyFromFailed(t *testing.T) {
	o := newTestOrder(t)
	require.ErrorIs(t, o.StartRetry(), errs.ErrInvalidTransition)

	completed := newTestOrder(t)
	require.NoError(t, completed.StartProcessing())
	require.NoError(t, completed.SetDesign("d"))
	require.NoError(t, completed.SetPackage("p"))
	require.NoError(t, completed.SetUpload("u"))
	require.NoError(t, completed.Complete("n"))

	require.ErrorIs(t, completed.StartRetry(), errs.ErrInvalidTransition)
}

func TestOrder_RetryOverwritesResult(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.StartProcessing())
	require.NoError(t, o.SetDesign("/designs/old.png"))
	require.NoError(t, o.Fail("create_package", "disk full"))
	require.NoError(t, o.StartRetry())

	require.NoError(t, o.StartProcessing())
	require.NoError(t, o.SetDesign("/designs/new.png"))

	assert.Equal(t, "/designs/new.png", o.Result().DesignPath)
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("allowed admin transition appends a phase", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ChangeStatus(order.Processing))
		assert.Equal(t, order.Processing, o.Status())

		phases := o.Phases()
		last := phases[len(phases)-1]
		assert.Equal(t, order.PhaseStatusChanged, last.Name)
	})

	t.Run("rejected transition leaves the order unchanged", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ChangeStatus(order.Processing))
		require.NoError(t, o.ChangeStatus(order.Completed))
		phasesBefore := len(o.Phases())

		err := o.ChangeStatus(order.Processing)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Completed, o.Status())
		assert.Len(t, o.Phases(), phasesBefore)
	})
}

func TestRestoreOrder(t *testing.T) {
	original := newTestOrder(t)
	require.NoError(t, original.StartProcessing())
	require.NoError(t, original.SetDesign("/designs/1.png"))

	restored, err := order.RestoreOrder(
		original.ID(),
		original.Customer(),
		original.Status(),
		original.Phases(),
		original.Result(),
		original.CreatedAt(),
	)
	require.NoError(t, err)

	assert.True(t, original.IsEqual(restored))
	assert.Equal(t, original.Status(), restored.Status())
	assert.Equal(t, original.Phases(), restored.Phases())
	assert.Equal(t, original.Result(), restored.Result())
	assert.Equal(t, original.CreatedAt(), restored.CreatedAt())
}

func TestRestoreOrder_InvalidStatus(t *testing.T) {
	_, err := order.RestoreOrder(
		kernel.NewUUID(), validCustomer(t), order.Unknown, nil, order.Result{}, time.Now())
	require.Error(t, err)
}

func TestOrder_PhasesAreCopied(t *testing.T) {
	o := newTestOrder(t)

	phases := o.Phases()
	phases[0].Name = "tampered"

	assert.Equal(t, order.PhaseOrderReceived, o.Phases()[0].Name)
}
