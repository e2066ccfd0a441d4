package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		id, "Linh Tran", "linh@example.com", "M", "black", 2, "a cat surfing a wave", "")
	require.NoError(t, err)

	assert.True(t, cmd.OrderID().IsEqual(id))
	assert.Equal(t, "Linh Tran", cmd.Customer().Name())
	assert.Equal(t, "en", cmd.Customer().Language(), "empty language defaults to en")
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.UUID{}, "Linh Tran", "linh@example.com", "M", "black", 2, "prompt", "en")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_InvalidCustomer(t *testing.T) {
	tests := map[string]struct {
		name     string
		email    string
		quantity int
	}{
		"empty name":        {name: "  ", email: "linh@example.com", quantity: 1},
		"malformed email":   {name: "Linh", email: "not-an-email", quantity: 1},
		"zero quantity":     {name: "Linh", email: "linh@example.com", quantity: 0},
		"negative quantity": {name: "Linh", email: "linh@example.com", quantity: -3},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(
				kernel.NewUUID(), tc.name, tc.email, "M", "black", tc.quantity, "prompt", "en")
			require.Error(t, err)
		})
	}
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
